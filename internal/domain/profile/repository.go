package profile

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by CredentialRepository.Create when the email is already stored.
var ErrEmailTaken = errors.New("email already registered")

// Repository exposes profile persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, item Profile) error
	Update(ctx context.Context, item Profile) error
}

// CredentialRepository stores password hashes keyed by email.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (Credential, bool, error)
	Create(ctx context.Context, item Credential) error
	Delete(ctx context.Context, userID string) error
}
