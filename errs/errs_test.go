package errs

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("order not found"), http.StatusNotFound},
		{"forbidden", Forbidden("not yours"), http.StatusForbidden},
		{"conflict", Conflict("cannot cancel delivered order"), http.StatusConflict},
		{"gateway", PaymentGateway("card_declined", "declined", nil), http.StatusInternalServerError},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
		{"untyped", errors.New("plain"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", NotFound("gone")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("lifecycle rule"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestError_MessagePreservesCode(t *testing.T) {
	err := PaymentGateway("card_declined", "Your card was declined.", nil)
	assert.Equal(t, "Your card was declined. (card_declined)", err.Error())
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("typed error exposes its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, NotFound("order not found"))

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"order not found"}`, w.Body.String())
	})

	t.Run("gateway error carries the provider code", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, PaymentGateway("card_declined", "Your card was declined.", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Your card was declined.","code":"card_declined"}`, w.Body.String())
	})

	t.Run("internal detail stays out of the body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, Internal("db credentials wrong", errors.New("secret detail")))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())
	})
}
