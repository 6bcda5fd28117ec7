// Package usecase contiene los casos de uso CRUD simples (catálogo y
// clientes); los flujos transaccionales viven en sus propios paquetes.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	orderRepo repository.OrderRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, orderRepo repository.OrderRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, orderRepo: orderRepo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: falta name", domain.ErrInvalidInput)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	resp := dto.CustomerFromEntity(customer)
	return &resp, nil
}

// GetDetail obtiene un cliente con su historial de pedidos.
func (uc *CustomerUseCase) GetDetail(id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	orders, err := uc.orderRepo.List(repository.OrderFilter{CustomerID: customer.ID})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerDetailResponse{
		Customer: dto.CustomerFromEntity(customer),
		Orders:   dto.OrdersFromEntities(orders),
	}, nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List() ([]dto.CustomerResponse, error) {
	customers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.CustomerFromEntity(c))
	}
	return out, nil
}

// Update actualiza los datos de un cliente.
func (uc *CustomerUseCase) Update(id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: falta name", domain.ErrInvalidInput)
	}
	customer.Name = name
	customer.ContactPerson = in.ContactPerson
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.Notes = in.Notes
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	resp := dto.CustomerFromEntity(customer)
	return &resp, nil
}

// Delete elimina un cliente sin pedidos registrados.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	orders, err := uc.orderRepo.List(repository.OrderFilter{CustomerID: customer.ID})
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return fmt.Errorf("%w: el cliente %s tiene %d pedido(s) registrados",
			domain.ErrConflict, customer.Name, len(orders))
	}
	return uc.repo.Delete(id)
}
