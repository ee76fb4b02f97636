package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateInvoiceNumber builds a human-facing invoice number: prefix, UTC date,
// and a 6-digit cryptographic random suffix. Uniqueness is ultimately enforced
// by the orders.invoice_number unique constraint; callers regenerate on
// collision a bounded number of times.
func GenerateInvoiceNumber() string {
	now := time.Now().UTC()
	datePart := now.Format("20060102")

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// time-based entropy if the system RNG is unavailable
		n = big.NewInt(now.UnixNano() % 1000000)
	}

	return fmt.Sprintf("INV-%s-%06d", datePart, n.Int64())
}

// GenerateInvoiceNumberFallback is the last resort after repeated collisions:
// a nanosecond-resolution timestamp suffix that cannot realistically collide.
func GenerateInvoiceNumberFallback() string {
	now := time.Now().UTC()
	return fmt.Sprintf("INV-%s-%d", now.Format("20060102"), now.UnixNano())
}
