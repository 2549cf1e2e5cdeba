package handler

import (
	"net/http"
	"strconv"
	"strings"

	"equiploan/internal/booking"
	"equiploan/internal/entity"
	"equiploan/internal/midlleware"
)

type RequestHandler struct {
	svc *booking.Service
}

func NewRequestHandler(svc *booking.Service) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type createRequestRequest struct {
	EquipmentID int    `json:"equipmentId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// Collection - GET список заявок, POST новая заявка.
func (h *RequestHandler) Collection(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, principal)
	case http.MethodPost:
		h.create(w, r, principal)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *RequestHandler) list(w http.ResponseWriter, principal entity.Principal) {
	list, err := h.svc.ListRequests(principal)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *RequestHandler) create(w http.ResponseWriter, r *http.Request, principal entity.Principal) {
	var body createRequestRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	if body.EquipmentID <= 0 {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	id, err := h.svc.CreateRequest(principal, body.EquipmentID, body.StartDate, body.EndDate)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// SetStatus - PATCH /api/requests/{id}/status, только staff и admin.
func (h *RequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/requests/")
	idStr, tail, found := strings.Cut(path, "/")
	if !found || tail != "status" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	var body setStatusRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	if err := h.svc.SetRequestStatus(principal, id, entity.Status(body.Status)); err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
