package models

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"sync"

	"github.com/rohanthewiz/serr"
)

// EncryptionKeyLength is the AES-256 key size in bytes
const EncryptionKeyLength = 32

var (
	encryptionKey []byte
	encryptionMu  sync.RWMutex
)

// InitEncryption turns on at-rest encryption of note content.
// An empty key leaves it off. The key must not change once notes have
// been stored with it, or they can no longer be read.
func InitEncryption(key string) error {
	if key == "" {
		ResetEncryption()
		return nil
	}
	if len(key) != EncryptionKeyLength {
		return serr.New("encryption key must be exactly 32 characters for AES-256, got " + strconv.Itoa(len(key)))
	}

	encryptionMu.Lock()
	encryptionKey = []byte(key)
	encryptionMu.Unlock()
	return nil
}

// IsEncryptionEnabled reports whether new content is stored encrypted
func IsEncryptionEnabled() bool {
	encryptionMu.RLock()
	defer encryptionMu.RUnlock()
	return len(encryptionKey) == EncryptionKeyLength
}

// ResetEncryption clears the key
func ResetEncryption() {
	encryptionMu.Lock()
	encryptionKey = nil
	encryptionMu.Unlock()
}

func newGCM() (cipher.AEAD, error) {
	encryptionMu.RLock()
	key := encryptionKey
	encryptionMu.RUnlock()

	if len(key) != EncryptionKeyLength {
		return nil, serr.New("encryption not initialized: call InitEncryption first")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create AES cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create GCM mode")
	}
	return gcm, nil
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce.
// Ciphertext and nonce come back base64-encoded for VARCHAR storage.
func Encrypt(plaintext string) (ciphertext string, iv string, err error) {
	gcm, err := newGCM()
	if err != nil {
		return "", "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", "", serr.Wrap(err, "failed to generate random nonce")
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), base64.StdEncoding.EncodeToString(nonce), nil
}

// Decrypt reverses Encrypt. Tampered ciphertext fails authentication.
func Decrypt(ciphertext string, iv string) (string, error) {
	gcm, err := newGCM()
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", serr.Wrap(err, "failed to decode ciphertext from base64")
	}
	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return "", serr.Wrap(err, "failed to decode IV from base64")
	}
	if len(nonce) != gcm.NonceSize() {
		return "", serr.New("invalid IV length")
	}

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", serr.Wrap(err, "decryption failed: ciphertext may be corrupted or tampered")
	}
	return string(plain), nil
}

// sealContent prepares note content for storage. With encryption off
// the content is stored as is and the IV stays empty.
func sealContent(content string) (stored string, iv string, err error) {
	if !IsEncryptionEnabled() {
		return content, "", nil
	}
	return Encrypt(content)
}

// openContent reverses sealContent. Rows written before encryption was
// turned on have no IV and are returned unchanged.
func openContent(stored string, iv string) (string, error) {
	if iv == "" {
		return stored, nil
	}
	return Decrypt(stored, iv)
}
