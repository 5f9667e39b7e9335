// Package typeid issues the prefixed, time-sortable identifiers used for
// history groups and collaboration sessions.
package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixGroup   = "grp"
	PrefixSession = "sess"
)

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewGroupID() string   { return New(PrefixGroup) }
func NewSessionID() string { return New(PrefixSession) }

// Validate checks that id parses and carries the expected prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != prefix {
		return fmt.Errorf("typeid %q: prefix %q, want %q", id, parsed.Prefix(), prefix)
	}
	return nil
}
