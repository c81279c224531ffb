// Package security provides argon2id hashing for passwords and passkeys.
package security

import "github.com/matthewhartstonge/argon2"

// HashSecret hashes a plaintext secret (password or passkey) with argon2id
// and returns the encoded hash string.
func HashSecret(secret string) (string, error) {
	cfg := argon2.DefaultConfig()

	encoded, err := cfg.HashEncoded([]byte(secret))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifySecret reports whether secret matches the encoded argon2 hash.
// The comparison inside the argon2 library is constant-time.
func VerifySecret(secret, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(secret), []byte(encodedHash))
}
