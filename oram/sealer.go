package oram

// Sealer encrypts block payloads before they reach storage and decrypts
// them on the way back. Seal must produce a fresh ciphertext on every call
// even for identical plaintexts, so that rewritten buckets are
// indistinguishable from changed ones. The (id, leaf) pair is bound into
// the ciphertext as associated data.
type Sealer interface {
	Seal(id int64, leaf int, plaintext []byte) ([]byte, error)
	Open(id int64, leaf int, ciphertext []byte) ([]byte, error)

	// Overhead returns the extra bytes Seal adds to a payload.
	Overhead() int
}

// PassthroughSealer stores payloads unencrypted. Use only in tests or when
// encryption happens in the storage backend itself.
type PassthroughSealer struct{}

// Seal returns a copy of plaintext.
func (PassthroughSealer) Seal(id int64, leaf int, plaintext []byte) ([]byte, error) {
	out := make([]byte, len(plaintext))
	copy(out, plaintext)
	return out, nil
}

// Open returns a copy of ciphertext.
func (PassthroughSealer) Open(id int64, leaf int, ciphertext []byte) ([]byte, error) {
	out := make([]byte, len(ciphertext))
	copy(out, ciphertext)
	return out, nil
}

// Overhead returns 0.
func (PassthroughSealer) Overhead() int {
	return 0
}
