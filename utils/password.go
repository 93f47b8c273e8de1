package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash. Equal inputs yield
// distinct hashes, so stored hashes must only ever be checked with
// CheckPasswordHash, never compared for equality.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
