package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key length in bytes.
	KeySize = 32

	nonceSize = 12
)

var (
	ErrSealFailed = errors.New("block seal failed")
	ErrOpenFailed = errors.New("block open failed")
)

// sealerKeyInfo domain-separates the bucket sealing key from any other key
// derived from the same master secret.
var sealerKeyInfo = []byte("oramd/bucket-sealer/v1")

// BucketSealer seals block payloads with AES-256-GCM. The AES key is
// derived from the master key with HKDF-SHA256, and the block's (id, leaf)
// pair is bound in as additional authenticated data so a ciphertext cannot
// be replayed into another slot.
type BucketSealer struct {
	aead cipher.AEAD
}

// NewBucketSealer derives the sealing key from a 32-byte master key.
func NewBucketSealer(masterKey []byte) (*BucketSealer, error) {
	if len(masterKey) != KeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", KeySize, len(masterKey))
	}

	key := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, masterKey, nil, sealerKeyInfo)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &BucketSealer{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
// Output format: nonce (12 bytes) || ciphertext || tag (16 bytes).
func (s *BucketSealer) Seal(id int64, leaf int, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, ErrSealFailed
	}
	return s.aead.Seal(nonce, nonce, plaintext, aad(id, leaf)), nil
}

// Open decrypts a payload produced by Seal for the same (id, leaf) pair.
func (s *BucketSealer) Open(id int64, leaf int, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < nonceSize+s.aead.Overhead() {
		return nil, ErrOpenFailed
	}
	plaintext, err := s.aead.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], aad(id, leaf))
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

// Overhead returns the bytes Seal adds: nonce plus GCM tag.
func (s *BucketSealer) Overhead() int {
	return nonceSize + s.aead.Overhead()
}

func aad(id int64, leaf int) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(id))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(leaf))
	return buf
}

// GenerateKey returns a fresh random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	return key, nil
}
