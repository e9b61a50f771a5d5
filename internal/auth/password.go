package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password does not match")

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// DummyHash is a valid bcrypt hash that matches no account. Logins for an
// unknown username are checked against it so they cost the same bcrypt work
// as logins for a real one.
var DummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword("unused-account-password")
	if err != nil {
		panic(err)
	}
	return hash
})
