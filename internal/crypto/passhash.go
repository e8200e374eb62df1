// Package crypto implements password hashing for the local credential directory.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Memory is kept modest since hashing runs on the client.
const (
	argonTime    uint32 = 2
	argonMemory  uint32 = 19 * 1024 // 19 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32

	saltLen = 16
)

// Credential is a salted Argon2id password hash.
type Credential struct {
	Hash []byte
	Salt []byte
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// NewCredential hashes password with a fresh random salt.
func NewCredential(password string) (Credential, error) {
	if password == "" {
		return Credential{}, errors.New("empty password")
	}
	salt, err := RandBytes(saltLen)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Hash: HashPassword([]byte(password), salt), Salt: salt}, nil
}

// Verify reports whether password matches the stored hash in constant time.
func (c Credential) Verify(password string) bool {
	if len(c.Hash) == 0 {
		return false
	}
	got := HashPassword([]byte(password), c.Salt)
	return subtle.ConstantTimeCompare(got, c.Hash) == 1
}

// HashPassword returns Argon2id hash of password using the provided salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
