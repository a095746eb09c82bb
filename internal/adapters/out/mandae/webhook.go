package mandae

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// WebhookValidator checks the HMAC-SHA256 signature the carrier attaches to
// tracking webhooks. The secret is optional: an empty secret accepts every
// payload, matching accounts that have not enabled signing.
type WebhookValidator struct {
	secret []byte
}

// NewWebhookValidator creates a validator for the given shared secret.
func NewWebhookValidator(secret string) WebhookValidator {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return WebhookValidator{secret: key}
}

// Validate reports whether the signature matches the raw request body. The
// body must be the bytes as received, before any JSON decoding.
func (v WebhookValidator) Validate(body []byte, signature string) bool {
	if len(v.secret) == 0 {
		return true
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
