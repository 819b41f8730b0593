// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testHashKey = "test-secret-key"

func TestHashString_MatchesHMAC(t *testing.T) {
	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write([]byte("p4ssw0rd"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, HashString("p4ssw0rd", testHashKey))
}

func TestHashString_Deterministic(t *testing.T) {
	assert.Equal(t, HashString("same", testHashKey), HashString("same", testHashKey))
}

func TestHashString_DifferentKeys(t *testing.T) {
	assert.NotEqual(t, HashString("same", "key-one"), HashString("same", "key-two"))
}

func TestHashString_DifferentInputs(t *testing.T) {
	assert.NotEqual(t, HashString("alpha", testHashKey), HashString("beta", testHashKey))
}

func TestHashString_EmptyKey(t *testing.T) {
	assert.Len(t, HashString("data", ""), sha256.Size*2)
}

func TestHashEqual(t *testing.T) {
	digest := HashString("p4ssw0rd", testHashKey)

	assert.True(t, HashEqual("p4ssw0rd", digest, testHashKey))
	assert.False(t, HashEqual("wrong", digest, testHashKey))
	assert.False(t, HashEqual("p4ssw0rd", digest, "other-key"))
	assert.False(t, HashEqual("p4ssw0rd", "not-hex", testHashKey))
}
