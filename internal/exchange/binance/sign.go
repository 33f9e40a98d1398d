package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Clock supplies the millisecond timestamp used as the request nonce.
// It must be non-decreasing; a fresh value is read per built request so
// timestamps are never reused across attempts.
type Clock func() int64

func systemClock() int64 {
	return time.Now().UnixMilli()
}

// sign computes the lowercase hex HMAC-SHA256 tag over the canonical
// query string. The payload is signed exactly as given; canonical
// ordering is the builder's job.
func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
