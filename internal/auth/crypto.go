package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const saltSize = 16

func deriveKey(secret string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(secret), salt, 1<<15, 8, 1, 32)
}

// seal encrypts plaintext with a key derived from secret. Output layout:
// base64(salt || nonce || ciphertext).
func seal(secret string, plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	key, err := deriveKey(secret, salt)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ct := aead.Seal(nil, nonce, plaintext, nil)
	buf := append(append(salt, nonce...), ct...)
	return base64.RawStdEncoding.EncodeToString(buf), nil
}

func open(secret, sealed string) ([]byte, error) {
	buf, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}
	if len(buf) < saltSize {
		return nil, fmt.Errorf("auth: sealed data too short")
	}
	salt, rest := buf[:saltSize], buf[saltSize:]
	key, err := deriveKey(secret, salt)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	ns := aead.NonceSize()
	if len(rest) < ns {
		return nil, fmt.Errorf("auth: sealed data too short")
	}
	return aead.Open(nil, rest[:ns], rest[ns:], nil)
}
