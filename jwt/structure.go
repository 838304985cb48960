package jwt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
)

var hmacAlgs = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

var (
	segmentEncoding = base64.RawURLEncoding.Strict()
	lenientEncoding = base64.RawURLEncoding
)

// inspect checks the compact structure before any cryptographic work so that
// every structural failure maps to a precise Kind.
func inspect(token, alg string) Result {
	if strings.TrimSpace(token) == "" {
		return reject(KindInvalidArgument, "token string is empty")
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return reject(KindMalformed, "token must have exactly three segments")
	}

	rawHeader, err := segmentEncoding.DecodeString(parts[0])
	if err != nil {
		return reject(KindMalformed, "header segment is not base64url")
	}
	var header map[string]any
	if err := json.Unmarshal(rawHeader, &header); err != nil || header == nil {
		return reject(KindMalformed, "header is not a JSON object")
	}
	declared, _ := header["alg"].(string)
	if declared == "" {
		return reject(KindUnsupportedAlgorithm, "header declares no algorithm")
	}
	otherHMAC := false
	if declared != alg {
		if !hmacAlgs[declared] {
			return reject(KindUnsupportedAlgorithm, "declared algorithm is not accepted")
		}
		// Another HMAC size: a different key signed it.
		otherHMAC = true
	}

	rawPayload, err := segmentEncoding.DecodeString(parts[1])
	if err != nil {
		return reject(KindMalformed, "payload segment is not base64url")
	}
	if !isJSONObject(rawPayload) {
		return reject(KindInvalidArgument, "payload is not a claims object")
	}

	if _, err := segmentEncoding.DecodeString(parts[2]); err != nil {
		if _, lenientErr := lenientEncoding.DecodeString(parts[2]); lenientErr == nil {
			// Decodable only by ignoring trailing bits: an altered signature.
			return reject(KindSignatureMismatch, "signature is not canonically encoded")
		}
		return reject(KindMalformed, "signature segment is not base64url")
	}
	if otherHMAC {
		return reject(KindSignatureMismatch, "signature was made with a different key")
	}

	return Result{}
}

func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(trimmed, &obj) == nil
}
