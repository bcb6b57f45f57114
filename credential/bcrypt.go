package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedCredential signals stored data that is not a bcrypt hash.
var ErrMalformedCredential = errors.New("credential: malformed stored credential")

// Bcrypt hashes and verifies passwords. A zero Cost means bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

// NewBcrypt clamps cost into the range bcrypt accepts.
func NewBcrypt(cost int) Bcrypt {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return Bcrypt{Cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (b Bcrypt) Hash(plaintext string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("credential: hash: %w", err)
	}
	return string(hash), nil
}

// Verify compares plaintext against a stored hash in constant time.
// A mismatch is (false, nil); only unreadable stored data is an error.
func (b Bcrypt) Verify(plaintext, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
}
