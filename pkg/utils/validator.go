package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	cpfRegex   = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("e-mail inválido: %s", email)
	}
	return nil
}

// ValidateCPF validates the shape of a CPF (with or without punctuation).
// It does not verify the check digits.
func ValidateCPF(cpf string) error {
	if !cpfRegex.MatchString(cpf) {
		return fmt.Errorf("CPF inválido: %s", cpf)
	}
	return nil
}

// SanitizeString removes control characters from free-text input
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
