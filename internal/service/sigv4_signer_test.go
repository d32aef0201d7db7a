package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigner() *SigV4Signer {
	return NewSigV4Signer(
		"AKIDEXAMPLE",
		"wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		"us-east-1",
		"ProductAdvertisingAPI",
		"webservices.amazon.com",
	)
}

func TestSigV4Signer_Deterministic(t *testing.T) {
	signer := testSigner()
	ts := "20240215T120000Z"

	first := signer.Sign("POST", "/paapi5/searchitems", ts)
	second := signer.Sign("POST", "/paapi5/searchitems", ts)

	assert.Equal(t, first, second, "same inputs must produce the same header")
}

func TestSigV4Signer_HeaderFormat(t *testing.T) {
	signer := testSigner()
	header := signer.Sign("POST", "/paapi5/searchitems", "20240215T120000Z")

	assert.True(t, strings.HasPrefix(header, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20240215/us-east-1/ProductAdvertisingAPI/aws4_request, "))
	assert.Contains(t, header, "SignedHeaders=host;x-amz-date")
	assert.Regexp(t, `Signature=[0-9a-f]{64}$`, header)
}

// Re-derives the signature with the raw primitives to pin the exact
// canonicalization: empty query string, host and x-amz-date headers, and an
// empty-string payload hash regardless of the request body.
func TestSigV4Signer_MatchesIndependentDerivation(t *testing.T) {
	const (
		accessKey = "AKIDEXAMPLE"
		secretKey = "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY"
		region    = "us-east-1"
		svc       = "ProductAdvertisingAPI"
		host      = "webservices.amazon.com"
		ts        = "20240215T120000Z"
		path      = "/paapi5/getitems"
	)

	sha := func(s string) string {
		sum := sha256.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	}
	mac := func(key []byte, data string) []byte {
		m := hmac.New(sha256.New, key)
		m.Write([]byte(data))
		return m.Sum(nil)
	}

	canonical := "POST\n" + path + "\n\n" +
		"host:" + host + "\nx-amz-date:" + ts + "\n\n" +
		"host;x-amz-date\n" + sha("")
	scope := "20240215/" + region + "/" + svc + "/aws4_request"
	stringToSign := "AWS4-HMAC-SHA256\n" + ts + "\n" + scope + "\n" + sha(canonical)

	key := mac(mac(mac(mac([]byte("AWS4"+secretKey), "20240215"), region), svc), "aws4_request")
	wantSig := hex.EncodeToString(mac(key, stringToSign))

	header := NewSigV4Signer(accessKey, secretKey, region, svc, host).Sign("POST", path, ts)
	require.True(t, strings.HasSuffix(header, "Signature="+wantSig), "header %q", header)
}

func TestSigV4Signer_SignatureVariesWithInputs(t *testing.T) {
	signer := testSigner()
	ts := "20240215T120000Z"
	base := signer.Sign("POST", "/paapi5/searchitems", ts)

	assert.NotEqual(t, base, signer.Sign("POST", "/paapi5/getitems", ts), "path must affect the signature")
	assert.NotEqual(t, base, signer.Sign("POST", "/paapi5/searchitems", "20240216T120000Z"), "timestamp must affect the signature")

	other := NewSigV4Signer("AKIDEXAMPLE", "different-secret", "us-east-1", "ProductAdvertisingAPI", "webservices.amazon.com")
	assert.NotEqual(t, base, other.Sign("POST", "/paapi5/searchitems", ts), "secret must affect the signature")
}

func TestAmzTimestamp(t *testing.T) {
	at := time.Date(2024, 2, 15, 9, 30, 45, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "20240215T143045Z", AmzTimestamp(at), "timestamps render in UTC")
}
