package auth

import "golang.org/x/crypto/bcrypt"

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BcryptHasher adapts the package functions to an injectable value.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptHasher) Check(hash, password string) bool {
	return CheckPassword(hash, password)
}
