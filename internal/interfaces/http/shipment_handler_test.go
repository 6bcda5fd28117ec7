package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

type listShipmentRepo struct {
	shipments []*entity.Shipment
}

func (r *listShipmentRepo) Create(*entity.Shipment) error            { return nil }
func (r *listShipmentRepo) GetByID(string) (*entity.Shipment, error) { return nil, nil }

func (r *listShipmentRepo) List(orderID string) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, s := range r.shipments {
		if orderID == "" || s.OrderID == orderID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *listShipmentRepo) SumShippedByProduct(string) (map[string]int, error) { return nil, nil }
func (r *listShipmentRepo) CountByOrder(string) (int, error)                   { return 0, nil }

func listViaApp(t *testing.T, repo *listShipmentRepo, target string) (int, []map[string]any) {
	t.Helper()
	app := fiber.New()
	h := NewShipmentHandler(nil, repo)
	app.Get("/api/shipments", h.List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

// orderId es un filtro opcional: sin él se listan todos los despachos.
func TestShipmentHandler_ListarSinFiltroDevuelveTodos(t *testing.T) {
	repo := &listShipmentRepo{shipments: []*entity.Shipment{
		{ID: "shp-1", OrderID: "order-1", OrderNumber: "ORD-20260830-0001"},
		{ID: "shp-2", OrderID: "order-2", OrderNumber: "ORD-20260830-0002"},
	}}

	status, body := listViaApp(t, repo, "/api/shipments")
	assert.Equal(t, http.StatusOK, status, "sin orderId la lista completa debe responder 200")
	assert.Len(t, body, 2)
}

func TestShipmentHandler_ListarFiltradoPorPedido(t *testing.T) {
	repo := &listShipmentRepo{shipments: []*entity.Shipment{
		{ID: "shp-1", OrderID: "order-1", OrderNumber: "ORD-20260830-0001"},
		{ID: "shp-2", OrderID: "order-2", OrderNumber: "ORD-20260830-0002"},
	}}

	status, body := listViaApp(t, repo, "/api/shipments?orderId=order-2")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body, 1)
	assert.Equal(t, "shp-2", body[0]["id"])
}
