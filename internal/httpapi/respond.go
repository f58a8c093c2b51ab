package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
	"github.com/wojbuk3335/Bukowski-app-API-sub002/pkg/logger"
)

var validate = validator.New()

type errorBody struct {
	Message string `json:"message"`
}

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// RespondError answers with the status carried by err. Server errors are
// logged and their details hidden from the client.
func RespondError(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	status := apperror.StatusCode(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = http.StatusText(status)
	}
	Respond(w, status, errorBody{Message: msg})
}

// Decode reads a JSON body into v and validates it. An empty body leaves v untouched.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperror.BadRequest("invalid request body: %v", err)
	}
	return Validate(v)
}

func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return apperror.BadRequest("%v", err)
	}
	msgs := make([]string, 0, len(vErrs))
	for _, e := range vErrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
	}
	return apperror.BadRequest("validation failed: %s", strings.Join(msgs, "; "))
}
