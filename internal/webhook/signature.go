package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// signatureScheme prefixes every X-Liva-Signature value so receivers
// can tell which digest produced it.
const signatureScheme = "sha256="

// Sign computes the X-Liva-Signature header value for a payload: the
// scheme prefix followed by the hex HMAC-SHA256 of the body under the
// shared secret.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signatureScheme + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches payload. The comparison is
// constant time.
func Verify(secret string, payload []byte, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(secret, payload)))
}
