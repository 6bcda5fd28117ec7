package dto

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// CustomerRequest body para crear o actualizar un cliente.
type CustomerRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// CustomerResponse representación HTTP de un cliente.
type CustomerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CustomerDetailResponse cliente con su historial de pedidos.
type CustomerDetailResponse struct {
	Customer CustomerResponse `json:"customer"`
	Orders   []OrderResponse  `json:"orders"`
}

// CustomerFromEntity convierte la entidad a su representación HTTP.
func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
