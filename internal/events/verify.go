// Package events handles Slack Events API deliveries: request signature
// verification and the url_verification handshake.
package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

const (
	// SignatureHeader y TimestampHeader son los headers que firma Slack.
	SignatureHeader = "X-Slack-Signature"
	TimestampHeader = "X-Slack-Request-Timestamp"

	version = "v0"

	// maxSkew: requests más viejos se descartan para cortar replay.
	maxSkew = 5 * time.Minute
)

var (
	ErrStaleTimestamp = errors.New("request timestamp outside tolerance window")
	ErrBadSignature   = errors.New("signature mismatch")
)

// VerifySignature checks a delivery against the app's signing secret using
// Slack's v0 scheme: hex(hmac-sha256(secret, "v0:<ts>:<body>")).
func VerifySignature(signingSecret, timestamp, signature string, body []byte) error {
	return verifyAt(signingSecret, timestamp, signature, body, time.Now())
}

func verifyAt(signingSecret, timestamp, signature string, body []byte, now time.Time) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > maxSkew || age < -maxSkew {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(version + ":" + timestamp + ":"))
	mac.Write(body)
	expected := version + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
