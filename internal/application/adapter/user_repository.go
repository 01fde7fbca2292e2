package adapter

import (
	"context"

	"github.com/invoice-manager/backend/internal/domain/entity"
)

// UserRepository persists the accounts that own clients and invoices.
// Emails are stored lowercased and are unique across all users.
type UserRepository interface {
	// Create returns domainerror.ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domainerror.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
