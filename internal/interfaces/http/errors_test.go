package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// respondViaApp monta una ruta que responde con el error dado y devuelve el
// status y el cuerpo observados por el cliente.
func respondViaApp(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	raw, reqErr := io.ReadAll(resp.Body)
	require.NoError(t, reqErr)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestRespondError_MapeoDeCodigos(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest},
		{"tipo de producto", domain.ErrWrongProductType, http.StatusBadRequest},
		{"bajo lo despachado", domain.ErrBelowShipped, http.StatusBadRequest},
		{"no-op", domain.ErrNoOp, http.StatusBadRequest},
		{"sobredespacho", domain.ErrOverShipment, http.StatusConflict},
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusConflict},
		{"conflicto", domain.ErrConflict, http.StatusConflict},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict},
		{"pedido inconsistente", domain.ErrInconsistentOrder, http.StatusUnprocessableEntity},
		{"error desconocido", errors.New("se cayó la base"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondViaApp(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.err.Error(), body["error"],
				"el cuerpo siempre lleva el mensaje bajo la llave error")
		})
	}
}

// Los casos de uso envuelven el sentinela con detalle; el status sale del
// sentinela y el cuerpo conserva el mensaje completo.
func TestRespondError_ErrorEnvueltoConservaDetalle(t *testing.T) {
	wrapped := fmt.Errorf("%w: producto Pan: se requieren 10, disponibles 4", domain.ErrInsufficientStock)

	status, body := respondViaApp(t, wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "disponibles 4")
}
