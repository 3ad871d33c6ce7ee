package repository

import (
	"context"

	"github.com/boutiq/storefront/internal/domain/model"
)

// AdminRepository reads back-office accounts. Account provisioning is
// handled outside this service.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}
