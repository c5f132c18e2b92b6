package bithumb

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// signToken builds the signed bearer token the v1 API expects: a compact
// HS256 JWT whose payload carries the access key, a one-time nonce, and a
// millisecond timestamp. Requests with parameters additionally carry a
// SHA512 hash of the encoded query string.
func signToken(accessKey, secretKey, query string) (string, error) {
	if accessKey == "" || secretKey == "" {
		return "", fmt.Errorf("missing API credentials")
	}

	nonce, err := randomNonce()
	if err != nil {
		return "", err
	}

	claims := map[string]any{
		"access_key": accessKey,
		"nonce":      nonce,
		"timestamp":  time.Now().UnixMilli(),
	}
	if query != "" {
		sum := sha512.Sum512([]byte(query))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}

	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	hb, _ := json.Marshal(header)
	cb, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	signingInput := enc.EncodeToString(hb) + "." + enc.EncodeToString(cb)

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(signingInput))
	sig := enc.EncodeToString(mac.Sum(nil))

	return signingInput + "." + sig, nil
}

func randomNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}
