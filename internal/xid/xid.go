// Package xid generates the human-readable identifiers printed on receipts and labels.
package xid

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const InvoicePrefix = "INV"

var now = time.Now

// InvoiceNumber returns {prefix}-{last 8 digits of epoch ms}-{3 random digits}.
// It is not guaranteed unique; callers rely on the UNIQUE column and retry.
func InvoiceNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, stamp(), random3())
}

// Barcode returns the digits-only product code {last 8 digits of epoch ms}{3 random digits}.
func Barcode() string {
	return fmt.Sprintf("%s%03d", stamp(), random3())
}

func stamp() string {
	return fmt.Sprintf("%08d", now().UnixMilli()%100_000_000)
}

func random3() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return now().UnixNano() % 1000
	}
	return n.Int64()
}
