package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sahilphalke/PlayTurf/internal/model"
)

// DefaultBcryptCost matches the cost the stored hashes were created with.
// Raising it strengthens new hashes only; old hashes keep verifying
// because bcrypt encodes salt and cost in the hash itself.
const DefaultBcryptCost = 10

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrCryptoFailure, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A wrong
// password is (false, nil); a malformed hash is a crypto failure so
// callers never surface it as "invalid credentials".
func (h *PasswordHasher) Verify(password string, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", model.ErrCryptoFailure, err)
}
