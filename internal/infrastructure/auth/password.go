package auth

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/teamtrack/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with a fixed bcrypt cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", crerr.Wrap(err, "hash password")
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if crerr.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return crerr.WithSecondaryError(crerr.Wrap(usecase.ErrUnauthorized, "compare password"), err)
		}
		return crerr.Wrap(err, "compare password")
	}
	return nil
}
