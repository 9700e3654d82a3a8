package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NilIfEmpty returns nil for an empty string.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
