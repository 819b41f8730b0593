package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data keyed with hashKey
// and returns it hex-encoded. Passwords are stored in this form and compared
// by digest equality.
//
// Example usage:
//
//	digest := utils.HashString("s3cret", cfg.App.PasswordHashKey)
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// HashEqual reports whether data hashes to digest under hashKey. The
// comparison runs in constant time.
func HashEqual(data, digest, hashKey string) bool {
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(hashString([]byte(data), hashKey), want)
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
