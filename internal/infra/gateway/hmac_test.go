//go:build unit

package gateway_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"resort-booking/internal/infra/gateway"
	"resort-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHMACSignatureVerifier(t *testing.T) {
	const secret = "webhook-test-secret"
	v := gateway.NewHMACSignatureVerifier(secret)

	t.Run("accepts a valid signature", func(t *testing.T) {
		sig := sign(secret, "order_9ab3", "pay_41f0")
		require.NoError(t, v.Verify("order_9ab3", "pay_41f0", sig))
	})

	t.Run("rejects a tampered payment id", func(t *testing.T) {
		sig := sign(secret, "order_9ab3", "pay_41f0")
		err := v.Verify("order_9ab3", "pay_other", sig)
		assert.ErrorIs(t, err, errs.ErrPaymentVerificationFailed)
	})

	t.Run("rejects a signature under a different secret", func(t *testing.T) {
		sig := sign("wrong-secret", "order_9ab3", "pay_41f0")
		err := v.Verify("order_9ab3", "pay_41f0", sig)
		assert.ErrorIs(t, err, errs.ErrPaymentVerificationFailed)
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		err := v.Verify("order_9ab3", "pay_41f0", "")
		assert.ErrorIs(t, err, errs.ErrPaymentVerificationFailed)
	})
}
