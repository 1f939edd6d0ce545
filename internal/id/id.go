// Package id generates the opaque identifiers the stores assign on creation.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixUser  = "user"
	PrefixVisit = "log"
	PrefixList  = "list"
)

// Generate returns prefix-<nanoid>, e.g. "user-V1StGXR8_Z5jdHi6B-myT".
// The nanoid part is 21 URL-safe characters.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}
