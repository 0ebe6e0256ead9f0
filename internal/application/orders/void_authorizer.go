package orders

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordAuthorizer lista fija de frases que autorizan anulaciones. Las frases se guardan
// como hash bcrypt y se comparan sin distinguir mayúsculas.
type PasswordAuthorizer struct {
	hashes [][]byte
}

// NewPasswordAuthorizer construye el autorizador a partir de las frases en claro (configuración).
func NewPasswordAuthorizer(phrases []string) (*PasswordAuthorizer, error) {
	a := &PasswordAuthorizer{}
	for _, p := range phrases {
		p = normalizeCredential(p)
		if p == "" {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash void credential: %w", err)
		}
		a.hashes = append(a.hashes, h)
	}
	return a, nil
}

// Authorize indica si la credencial coincide con alguna frase permitida.
func (a *PasswordAuthorizer) Authorize(credential string) bool {
	c := normalizeCredential(credential)
	if c == "" {
		return false
	}
	for _, h := range a.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(c)) == nil {
			return true
		}
	}
	return false
}

func normalizeCredential(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
