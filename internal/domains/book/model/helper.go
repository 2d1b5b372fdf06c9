package model

// NullIfEmpty maps a blank form value to SQL NULL.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NullIfZero maps an unset numeric form value to SQL NULL.
func NullIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
