package helper

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reDigit  = regexp.MustCompile(`[0-9]`)
)

// ValidatePassword: minimal 8 karakter, ada huruf & angka
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if !reLetter.MatchString(pw) || !reDigit.MatchString(pw) {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
