package services

import (
	"crypto/rand"
	"strconv"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber returns ORD-<unix ms>-<9 random base36 characters>.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 0, 9)
	var b [16]byte
	for len(suffix) < cap(suffix) {
		rand.Read(b[:])
		for _, c := range b {
			// 252 is the largest multiple of 36 below 256; rejecting above it keeps the draw uniform.
			if c < 252 && len(suffix) < cap(suffix) {
				suffix = append(suffix, orderNumberAlphabet[c%36])
			}
		}
	}
	return "ORD-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix)
}
