package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicy is the single, central definition of what passwords are
// accepted at registration. Login is deliberately not policy-checked so
// accounts created under older rules can still sign in (and be migrated).
type PasswordPolicy struct {
	MinLength        int
	AlphanumericOnly bool
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Validate returns a *ValidationError describing the first violated rule.
func (p PasswordPolicy) Validate(password string) error {
	if strings.TrimSpace(password) == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	if p.MinLength > 0 && len(password) < p.MinLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", p.MinLength),
		}
	}
	if p.AlphanumericOnly {
		for _, r := range password {
			if !isAlnum(r) {
				return &ValidationError{Field: "password", Reason: "must contain only letters and digits"}
			}
		}
	}
	return nil
}

// Stored credentials are versioned by format tag: bcrypt strings start with
// the "$2" modular-crypt prefix; anything else is a legacy plaintext
// credential kept only until its owner's next successful login.
const bcryptFormatTag = "$2"

// hashPassword derives a salted bcrypt credential. Never reversible; two
// calls with the same password yield different credentials.
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verifyCredential checks password against the stored credential and
// reports whether the credential is in the legacy format. A malformed
// credential verifies false, never panics.
func verifyCredential(credential, password string) (ok, legacy bool) {
	if strings.HasPrefix(credential, bcryptFormatTag) {
		return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil, false
	}
	// Legacy plaintext: constant-time compare, no partial-match short-circuit.
	return subtle.ConstantTimeCompare([]byte(credential), []byte(password)) == 1, true
}
