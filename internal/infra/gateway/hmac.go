package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/commands"
)

// HMACSignatureVerifier checks payment gateway webhook signatures:
// hex(HMAC-SHA256(orderID + "|" + paymentID)) under the shared webhook
// secret.
type HMACSignatureVerifier struct {
	secret []byte
}

func NewHMACSignatureVerifier(secret string) *HMACSignatureVerifier {
	return &HMACSignatureVerifier{secret: []byte(secret)}
}

var _ commands.SignatureVerifier = (*HMACSignatureVerifier)(nil)

func (v *HMACSignatureVerifier) Verify(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errs.Mark(errs.New("signature mismatch"), errs.ErrPaymentVerificationFailed)
	}
	return nil
}
