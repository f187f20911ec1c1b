// Package jsoncodec provides the JSON implementation of the Codec interface.
package jsoncodec

import (
	"encoding/json"

	"myregistry/interfaces"
)

// Codec marshals values of T to and from JSON.
type Codec[T any] struct{}

// New creates a JSON codec for T.
func New[T any]() Codec[T] {
	return Codec[T]{}
}

var _ interfaces.Codec[struct{}] = Codec[struct{}]{}

func (Codec[T]) Marshal(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
