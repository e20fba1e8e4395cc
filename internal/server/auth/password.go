package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher turns passwords into one-way digests and checks candidates
// against them.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into the range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Digest(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

// Matches reports whether password produces digest. Any bcrypt error,
// including a malformed digest, is a mismatch.
func (h *BcryptHasher) Matches(digest []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}
