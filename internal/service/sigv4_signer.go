package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	sigv4Algorithm     = "AWS4-HMAC-SHA256"
	sigv4Terminator    = "aws4_request"
	sigv4SignedHeaders = "host;x-amz-date"

	// AmzTimestampFormat is the x-amz-date layout (UTC, basic ISO 8601).
	AmzTimestampFormat = "20060102T150405Z"
)

// SigV4Signer produces AWS Signature Version 4 Authorization header values
// for the Product Advertising API. All inputs besides the timestamp are fixed
// at construction, so the output is fully deterministic per timestamp.
type SigV4Signer struct {
	accessKey string
	secretKey string
	region    string
	service   string
	host      string
}

// NewSigV4Signer creates a signer for the given credential set. Callers must
// verify credential presence before constructing one; the signer itself never
// touches the network.
func NewSigV4Signer(accessKey, secretKey, region, service, host string) *SigV4Signer {
	return &SigV4Signer{
		accessKey: accessKey,
		secretKey: secretKey,
		region:    region,
		service:   service,
		host:      host,
	}
}

// AmzTimestamp renders t in the x-amz-date format.
func AmzTimestamp(t time.Time) string {
	return t.UTC().Format(AmzTimestampFormat)
}

// Sign builds the Authorization header value for a request with the given
// method and path at the given x-amz-date timestamp.
//
// The payload hash is always SHA-256 of the empty string, even for POST
// requests that carry a JSON body. That matches the integration this signer
// was ported from, which never hashed the body; a live PA-API endpoint would
// reject such a signature. Kept as-is rather than silently corrected.
func (s *SigV4Signer) Sign(method, path, timestamp string) string {
	canonicalQuery := ""
	canonicalHeaders := "host:" + s.host + "\n" + "x-amz-date:" + timestamp + "\n"
	payloadHash := sha256Hex("")

	canonicalRequest := strings.Join([]string{
		method,
		path,
		canonicalQuery,
		canonicalHeaders,
		sigv4SignedHeaders,
		payloadHash,
	}, "\n")

	date := timestamp[:8]
	credentialScope := strings.Join([]string{date, s.region, s.service, sigv4Terminator}, "/")
	stringToSign := strings.Join([]string{
		sigv4Algorithm,
		timestamp,
		credentialScope,
		sha256Hex(canonicalRequest),
	}, "\n")

	signingKey := s.deriveKey(date)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		sigv4Algorithm, s.accessKey, credentialScope, sigv4SignedHeaders, signature)
}

// deriveKey runs the four-step HMAC chain: date, region, service, terminator.
func (s *SigV4Signer) deriveKey(date string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+s.secretKey), date)
	kRegion := hmacSHA256(kDate, s.region)
	kService := hmacSHA256(kRegion, s.service)
	return hmacSHA256(kService, sigv4Terminator)
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func sha256Hex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
