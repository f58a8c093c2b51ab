package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/apperror"
)

func TestStatusCode(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperror.NotFound("good %s not found", "g1"), http.StatusNotFound},
		{"bad request", apperror.BadRequest("Cena musi być większa od zera"), http.StatusBadRequest},
		{"conflict", apperror.Conflict("exists"), http.StatusConflict},
		{"wrapped", fmt.Errorf("create: %w", apperror.BadRequest("x")), http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			c.Assert(apperror.StatusCode(tt.err), qt.Equals, tt.want)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	c := qt.New(t)

	err := apperror.NotFound("price list for selling point %s not found", "sp1")
	c.Assert(err, qt.ErrorMatches, "price list for selling point sp1 not found")
	c.Assert(apperror.IsNotFound(err), qt.IsTrue)

	internal := apperror.Internal(errors.New("db down"))
	c.Assert(internal, qt.ErrorMatches, "internal server error: db down")
	c.Assert(errors.Is(internal, apperror.ErrInternal), qt.IsTrue)
}
