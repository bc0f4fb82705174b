// Package crypto implements the bucket sealing collaborator: authenticated
// encryption of block payloads before they reach tree storage.
//
// The ORAM core treats payloads as opaque bytes; this package owns the key
// material and the ciphertext format. Every Seal call draws a fresh nonce,
// so rewriting a bucket with unchanged contents still produces new
// ciphertexts and a storage observer cannot tell a rewrite from a change.
package crypto
