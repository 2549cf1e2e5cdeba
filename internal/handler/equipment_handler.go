package handler

import (
	"net/http"
	"strconv"
	"strings"

	"equiploan/internal/booking"
	"equiploan/internal/midlleware"
)

type EquipmentHandler struct {
	svc *booking.Service
}

func NewEquipmentHandler(svc *booking.Service) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

type createEquipmentRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
}

// Collection - GET список (публичный), POST создание (только admin).
func (h *EquipmentHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *EquipmentHandler) list(w http.ResponseWriter) {
	list, err := h.svc.ListEquipment()
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *EquipmentHandler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token")
		return
	}

	var body createEquipmentRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	id, err := h.svc.CreateEquipment(principal, body.Name, body.Category, body.Condition, body.Quantity)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// Delete - DELETE /api/equipment/{id}, только admin.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	principal, ok := middleware.PrincipalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/equipment/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	if err := h.svc.DeleteEquipment(principal, id); err != nil {
		writeCoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
