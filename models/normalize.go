package models

import "strings"

// Normalizer is implemented by inputs that clean themselves up before
// validation.
type Normalizer interface {
	Normalize()
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
