package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"equiploan/internal/booking"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Println("Ошибка записи ответа:", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCoreError переводит ошибку ядра в HTTP-статус по ее виду.
func writeCoreError(w http.ResponseWriter, err error) {
	var validation *booking.ValidationError
	var authorization *booking.AuthorizationError
	var notFound *booking.NotFoundError
	var conflict *booking.ConflictError

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &authorization):
		writeError(w, http.StatusForbidden, "Forbidden")
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.What+" not found")
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Message)
	default:
		fmt.Println("Ошибка ядра:", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
