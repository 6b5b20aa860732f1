package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used for new password hashes.
const DefaultBcryptCost = 12

// HashPassword derives a salted one-way digest of password. A cost outside
// bcrypt's valid range falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
