package typeid

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	for _, tt := range []struct {
		id     string
		prefix string
	}{
		{NewGroupID(), PrefixGroup},
		{NewSessionID(), PrefixSession},
	} {
		if !strings.HasPrefix(tt.id, tt.prefix+"_") {
			t.Errorf("%q lacks prefix %q", tt.id, tt.prefix)
		}
		if err := Validate(tt.id, tt.prefix); err != nil {
			t.Errorf("Validate(%q): %v", tt.id, err)
		}
	}
}

func TestUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewGroupID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewGroupID(), PrefixSession); err == nil {
		t.Error("wrong prefix accepted")
	}
	if err := Validate("not-an-id", PrefixGroup); err == nil {
		t.Error("garbage accepted")
	}
}
