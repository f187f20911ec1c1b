package interfaces

// Codec converts values to and from the byte payloads kept at tree nodes.
type Codec[T any] interface {
	Marshal(v T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}
