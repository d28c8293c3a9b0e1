package port

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
)

// PharmacyRepository defines the contract for pharmacy (tenant) persistence.
type PharmacyRepository interface {
	Create(ctx context.Context, pharmacy *domain.Pharmacy) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pharmacy, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Pharmacy, error)
	Update(ctx context.Context, pharmacy *domain.Pharmacy) error
}

// UserRepository defines the contract for user persistence.
// All query methods include pharmacyID to enforce tenant isolation at the data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, pharmacyID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, pharmacyID uuid.UUID, email string) (*domain.User, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, pharmacyID, userID uuid.UUID) error
}

// ProductRepository defines the contract for catalogue persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, pharmacyID, productID uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, pharmacyID uuid.UUID, sku string) (*domain.Product, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
}
