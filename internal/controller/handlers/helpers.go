package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/library_api/internal/service"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const msgInvalidJSON = "Invalid JSON body"

var errInvalidJSON = errors.New("invalid json body")

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// WriteJSON отправляет value как JSON с указанным статусом
func WriteJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// WriteError отправляет {"error": message}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// decodeJSON читает тело запроса. Пустое тело и null дают нулевое значение,
// чтобы сервис сам сообщил о недостающих полях.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return errInvalidJSON
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

// pathID достаёт {id} из пути. Маршруты принимают только цифры.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleError сопоставляет ошибку сервиса со статусом ответа
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	message := "Internal server error"
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, message)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		// конфликты отдаются как 400 для совместимости с существующими клиентами
		WriteError(w, http.StatusBadRequest, message)
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
