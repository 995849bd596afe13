package platform

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/enum"
)

// CreateCustomerInput is the payload for the platform's customer
// creation operation.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
}

// SaleItemInput carries the snapshotted unit price so the platform
// books exactly what the operator saw, regardless of concurrent
// catalog edits.
type SaleItemInput struct {
	MedicineID   uuid.UUID
	BatchID      uuid.UUID
	Quantity     int
	SellingPrice int64 // cents
}

// CreateSaleInput is the atomic commit payload.
type CreateSaleInput struct {
	CustomerID    *uuid.UUID
	Items         []SaleItemInput
	PaymentMethod enum.PaymentMethod
	AmountPaid    int64 // cents
	CounterID     uuid.UUID
}

// API is the remote contract the checkout engine requires from the
// pharmacy platform. Implementations must honor ctx cancellation and
// return apperror.ErrNotFound for customer lookup misses.
type API interface {
	SearchCatalog(ctx context.Context, query string, limit int) ([]entity.Medicine, error)
	SearchCustomers(ctx context.Context, query string, limit int) ([]entity.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error)
	ListCounters(ctx context.Context) ([]entity.Counter, error)
	CreateSale(ctx context.Context, input *CreateSaleInput, idempotencyKey string) (*entity.Sale, error)
}
