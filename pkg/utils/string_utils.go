package utils

// NewNullString returns nil for an empty string, for optional columns stored as NULL.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

