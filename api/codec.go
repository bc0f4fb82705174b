package api

import (
	"encoding/json"
	"fmt"
	"io"
)

// SerializeMessage encodes a message as JSON.
func SerializeMessage[T any](obj *T) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("serialize %T: %w", obj, err)
	}
	return data, nil
}

// DecodeMessage decodes a JSON message of the given type from r.
func DecodeMessage[T any](r io.Reader) (*T, error) {
	var obj T
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode %T: %w", &obj, err)
	}
	return &obj, nil
}
