package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of the admin password. Only used
// by the one-shot setup tooling that produces ADMIN_PASSWORD_HASH.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares the stored bcrypt hash and a login
// attempt.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
