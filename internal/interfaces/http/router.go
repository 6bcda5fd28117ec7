// Package http expone la superficie JSON-sobre-HTTP de la API de pedidos.
package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductHandler       *ProductHandler
	CustomerHandler      *CustomerHandler
	OrderHandler         *OrderHandler
	ShipmentHandler      *ShipmentHandler
	StockOrderHandler    *StockOrderHandler
	StockShipmentHandler *StockShipmentHandler
	ProductionHandler    *ProductionHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	products.Post("/", deps.ProductHandler.Create)
	products.Get("/", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.GetByID)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)
	products.Patch("/:id/inventory", deps.ProductHandler.SetInventory)
	products.Post("/:id/adjust-inventory", deps.ProductHandler.AdjustInventory)
	products.Get("/:id/adjustments", deps.ProductHandler.AdjustmentHistory)

	// Clientes
	customers := api.Group("/customers")
	customers.Post("/", deps.CustomerHandler.Create)
	customers.Get("/", deps.CustomerHandler.List)
	customers.Get("/:id", deps.CustomerHandler.GetByID)
	customers.Put("/:id", deps.CustomerHandler.Update)
	customers.Delete("/:id", deps.CustomerHandler.Delete)

	// Pedidos de venta
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/", deps.OrderHandler.Create)
	ordersGroup.Get("/", deps.OrderHandler.List)
	ordersGroup.Get("/stats", deps.OrderHandler.Stats)
	ordersGroup.Get("/:id", deps.OrderHandler.GetByID)
	ordersGroup.Put("/:id", deps.OrderHandler.Update)
	ordersGroup.Delete("/:id", deps.OrderHandler.Delete)
	ordersGroup.Patch("/:id/items/:itemId/quantity", deps.OrderHandler.UpdateItemQuantity)

	// Despachos de venta
	shipments := api.Group("/shipments")
	shipments.Post("/", deps.ShipmentHandler.Create)
	shipments.Get("/", deps.ShipmentHandler.List)
	shipments.Get("/:id", deps.ShipmentHandler.GetByID)

	// Pedidos de reposición
	stockOrders := api.Group("/stock-orders")
	stockOrders.Post("/", deps.StockOrderHandler.Create)
	stockOrders.Get("/", deps.StockOrderHandler.List)
	stockOrders.Get("/stats", deps.StockOrderHandler.Stats)
	stockOrders.Get("/:id", deps.StockOrderHandler.GetByID)
	stockOrders.Put("/:id", deps.StockOrderHandler.Update)
	stockOrders.Delete("/:id", deps.StockOrderHandler.Delete)
	stockOrders.Patch("/:id/items/:itemId/quantity", deps.StockOrderHandler.UpdateItemQuantity)

	// Despachos de reposición
	stockShipments := api.Group("/stock-shipments")
	stockShipments.Post("/", deps.StockShipmentHandler.Create)
	stockShipments.Get("/", deps.StockShipmentHandler.List)
	stockShipments.Get("/:id", deps.StockShipmentHandler.GetByID)

	// Plan de producción
	production := api.Group("/production")
	production.Get("/plan", deps.ProductionHandler.Plan)
	production.Get("/plan/pdf", deps.ProductionHandler.PlanPDF)
}
