// Package common provides shared helpers for the oramd CLI binaries: key
// loading and logger construction.
package common

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/tumichaels/oramd/crypto"
)

// LoadOrGenerateBucketKey decodes a hex-encoded 32-byte master key, or
// generates a fresh one if hexKey is empty. A generated key is printed so
// operators can pin it for subsequent runs.
func LoadOrGenerateBucketKey(hexKey string) ([]byte, error) {
	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("invalid hex: %w", err)
		}
		if len(key) != crypto.KeySize {
			return nil, fmt.Errorf("key must be %d bytes, got %d", crypto.KeySize, len(key))
		}
		return key, nil
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	fmt.Printf("Generated bucket key: %s\n", hex.EncodeToString(key))
	return key, nil
}

// SetupLogger builds the process logger.
func SetupLogger(json, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
