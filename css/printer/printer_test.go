package printer

import (
	"strings"
	"testing"
)

func TestPrinterOnIdent(t *testing.T) {
	var sb strings.Builder
	p := New(&sb, true)

	var seen []string
	p.OnIdent = func(name string) { seen = append(seen, name) }

	if err := p.WriteIdent("spin"); err != nil {
		t.Fatalf("WriteIdent() error = %v", err)
	}
	// only identifier references fire the hook
	if err := p.WriteString("keyframes"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	if err := p.WriteIdent("fade"); err != nil {
		t.Fatalf("WriteIdent() error = %v", err)
	}

	if len(seen) != 2 || seen[0] != "spin" || seen[1] != "fade" {
		t.Errorf("OnIdent saw %v, want [spin fade]", seen)
	}
	if got := sb.String(); got != "spinkeyframesfade" {
		t.Errorf("output = %q", got)
	}
}

func TestEscapeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"spin", "spin"},
		{"slide-in_2", "slide-in_2"},
		{"2x", `\2x`},
		{"a b", `a\ b`},
	}
	for _, tt := range tests {
		if got := EscapeIdent(tt.in); got != tt.want {
			t.Errorf("EscapeIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
