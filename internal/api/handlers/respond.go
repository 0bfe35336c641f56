package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/devconnect/devconnect-api/internal/service"
)

// errorList is the {"errors":[{"msg":...},...]} shape used for validation,
// conflict and credential failures.
type errorList struct {
	Errors []service.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, fields ...service.FieldError) {
	writeJSON(w, status, errorList{Errors: fields})
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// serverError logs the unexpected failure and hides its detail from clients.
func serverError(w http.ResponseWriter, tag string, err error) {
	log.Printf("ERROR [%s] %v", tag, err)
	http.Error(w, "Server Error", http.StatusInternalServerError)
}

// writeValidationError renders a *service.ValidationError, reporting whether
// it applied.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeErrors(w, http.StatusBadRequest, ve.Fields...)
		return true
	}
	return false
}
