package service

// Ptr returns a pointer to the provided value.
func Ptr[T any](v T) *T {
	return &v
}

// Value returns the value from the provided pointer or the zero value if the
// pointer is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
