package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// WalmartSigner produces the authentication headers for the Walmart affiliate
// API: a consumer ID, a millisecond timestamp, and a base64 HMAC-SHA256
// signature over "clientID\ntimestamp\n".
type WalmartSigner struct {
	clientID     string
	clientSecret string
	now          func() time.Time
}

// NewWalmartSigner creates a signer for the given consumer credentials.
func NewWalmartSigner(clientID, clientSecret string) *WalmartSigner {
	return &WalmartSigner{
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Sign computes the base64 signature for a given millisecond timestamp string.
func (s *WalmartSigner) Sign(timestamp string) string {
	message := s.clientID + "\n" + timestamp + "\n"
	mac := hmac.New(sha256.New, []byte(s.clientSecret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Headers builds the full header set for one request. The timestamp is taken
// fresh on every call; signed headers are never reused between requests.
func (s *WalmartSigner) Headers() map[string]string {
	timestamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	return map[string]string{
		"WM_SEC.KEY_VERSION":      "1",
		"WM_CONSUMER.ID":          s.clientID,
		"WM_CONSUMER.INTIMESTAMP": timestamp,
		"WM_SEC.AUTH_SIGNATURE":   s.Sign(timestamp),
		"Accept":                  "application/json",
		"Content-Type":            "application/json",
	}
}
