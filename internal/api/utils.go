package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

const maxBodyBytes = 1 << 20

func decodeJsonBody(body io.Reader, v any) error {
	decoder := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return err
	}
	return nil
}

func respondWithJson(w http.ResponseWriter, statusCode int, response []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(response); err != nil {
		log.Errorf("failed to write response, %v", err)
	}
}

// marshal and respond, or answer 500 when the value cannot be encoded
func respondWithValue(w http.ResponseWriter, statusCode int, value any) {
	responseBytes, err := json.Marshal(value)
	if err != nil {
		log.Errorf("unable to marshal %T, %v", value, err)
		http.Error(w, algo_errors.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}
	respondWithJson(w, statusCode, responseBytes)
}

// handlerError writes the status code matching the sentinel wrapped in err.
func handlerError(err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, algo_errors.ErrInvalidInput), errors.Is(err, algo_errors.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, algo_errors.ErrUnAuthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, algo_errors.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, algo_errors.ErrEntityAlreadyExist):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, algo_errors.ErrRemoteApi):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Error(err)
		http.Error(w, algo_errors.ErrInternal.Error(), http.StatusInternalServerError)
	}
}

// chiParam returns a path parameter with any percent escapes decoded.
func chiParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if value, err := url.PathUnescape(raw); err == nil {
		return value
	}
	return raw
}
