package services

import "crypto/subtle"

// AdminGuard checks the shared administrator secret.
type AdminGuard struct {
	secret []byte
}

func NewAdminGuard(secret string) AdminGuard {
	return AdminGuard{secret: []byte(secret)}
}

// Check fails with ErrUnauthorized unless supplied equals the configured secret.
// An unconfigured secret rejects everything.
func (g AdminGuard) Check(supplied string) error {
	if len(g.secret) == 0 || subtle.ConstantTimeCompare(g.secret, []byte(supplied)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
