package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"blogapi/app/payload"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	sendJSON(w, status, payload.NewErrorDetails(message, r.URL.Path))
}

func sendValidationError(w http.ResponseWriter, r *http.Request, fields payload.FieldErrors) {
	body := payload.NewErrorDetails("validation failed", r.URL.Path)
	body.Fields = fields
	sendJSON(w, http.StatusBadRequest, body)
}

// sendServiceError maps service errors onto status codes. Unknown errors are
// logged and hidden from the client.
func sendServiceError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	switch {
	case services.IsNotFound(err):
		sendError(w, r, err.Error(), http.StatusNotFound)
	case services.IsBadRequest(err):
		sendError(w, r, err.Error(), http.StatusBadRequest)
	default:
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
		sendError(w, r, "internal server error", http.StatusInternalServerError)
	}
}

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}
