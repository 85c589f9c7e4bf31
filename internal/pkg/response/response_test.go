package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_DefaultsMessageAndClampsStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return Error(c, fiber.StatusServiceUnavailable, "", nil)
	})
	app.Get("/bogus", func(c fiber.Ctx) error {
		return Error(c, 42, "", nil)
	})

	cases := map[string]SemanticResponse{
		"/unavailable": {Status: fiber.StatusServiceUnavailable, Message: MessageServiceUnavailable},
		"/bogus":       {Status: fiber.StatusInternalServerError, Message: MessageInternalServerError},
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want.Status, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got SemanticResponse
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.Message, got.Message)
	}
}

func TestDefaultMessage(t *testing.T) {
	cases := map[int]string{
		fiber.StatusOK:                  MessageOK,
		fiber.StatusCreated:             MessageOK,
		fiber.StatusBadRequest:          MessageBadRequest,
		fiber.StatusNotFound:            MessageNotFound,
		fiber.StatusTooManyRequests:     MessageError,
		fiber.StatusServiceUnavailable:  MessageServiceUnavailable,
		fiber.StatusBadGateway:          MessageInternalServerError,
		fiber.StatusInternalServerError: MessageInternalServerError,
	}
	for status, want := range cases {
		assert.Equal(t, want, DefaultMessage(status), "status %d", status)
	}
}
