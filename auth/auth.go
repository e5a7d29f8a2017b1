// Package auth holds the admin gate that guards every mutating operation.
package auth

import "crypto/subtle"

// CredentialChecker decides whether a supplied credential grants admin rights.
type CredentialChecker interface {
	IsAdmin(supplied string) bool
}

// SharedSecret compares the supplied value against one static secret.
// An empty secret denies everyone.
type SharedSecret struct {
	secret []byte
}

func NewSharedSecret(secret string) SharedSecret {
	return SharedSecret{secret: []byte(secret)}
}

func (s SharedSecret) IsAdmin(supplied string) bool {
	if len(s.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.secret, []byte(supplied)) == 1
}
