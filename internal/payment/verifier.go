// Package payment checks the authenticity of payment assertions returned by the gateway widget.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier recomputes the gateway signature over "orderID|paymentID" keyed by the
// gateway secret. It holds no state besides the key.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign returns the hex HMAC-SHA256 the gateway is expected to send for the pair.
func (v *Verifier) Sign(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches exactly. Empty inputs never verify.
func (v *Verifier) Verify(gatewayOrderID, paymentID, signature string) bool {
	if len(v.secret) == 0 || gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := v.Sign(gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
