package values

import (
	"strings"
	"testing"

	"cssc/css/compat"
	"cssc/css/printer"
)

func renderList(t *testing.T, l TokenList, minify bool) string {
	t.Helper()
	var sb strings.Builder
	if err := l.ToCSS(printer.New(&sb, minify)); err != nil {
		t.Fatalf("ToCSS() error = %v", err)
	}
	return sb.String()
}

func TestTokenListToCSS(t *testing.T) {
	l := TokenList{Tokens: lex("rgb(255, 0, 0)")}
	if got := renderList(t, l, true); got != "rgb(255,0,0)" {
		t.Errorf("minified = %q, want rgb(255,0,0)", got)
	}
	if got := renderList(t, l, false); got != "rgb(255, 0, 0)" {
		t.Errorf("pretty = %q, want rgb(255, 0, 0)", got)
	}
}

func TestTokenListNecessaryFallbacks(t *testing.T) {
	targets := compat.Browsers{Chrome: 90}

	l := TokenList{Tokens: lex("1px solid lab(52% 40 60)")}
	if got := l.NecessaryFallbacks(targets); got != compat.FallbackRGB|compat.FallbackLAB {
		t.Errorf("NecessaryFallbacks() = %v, want RGB|LAB", got)
	}

	plain := TokenList{Tokens: lex("1px solid #fff")}
	if got := plain.NecessaryFallbacks(targets); got != 0 {
		t.Errorf("NecessaryFallbacks() = %v, want 0 for srgb-only value", got)
	}
}

func TestTokenListWithFallback(t *testing.T) {
	l := TokenList{Tokens: lex("1px solid lab(52% 40 60)")}

	out := renderList(t, l.WithFallback(compat.FallbackRGB), true)
	if strings.Contains(out, "lab(") {
		t.Errorf("lab notation survived RGB rewrite: %q", out)
	}
	if !strings.HasPrefix(out, "1px solid ") {
		t.Errorf("non-color tokens not preserved: %q", out)
	}
	if !strings.Contains(out, "#") && !strings.Contains(out, "rgb") {
		t.Errorf("no sRGB notation in rewritten value: %q", out)
	}

	// values without colors come back unchanged
	plain := TokenList{Tokens: lex("1px solid")}
	if got := plain.WithFallback(compat.FallbackLAB); !got.Equal(plain) {
		t.Error("color-free value should be returned unchanged")
	}
}

func TestTokenListEqualAndClone(t *testing.T) {
	a := TokenList{Tokens: lex("1s linear")}
	b := TokenList{Tokens: lex("1s linear")}
	c := TokenList{Tokens: lex("2s linear")}

	if !a.Equal(b) {
		t.Error("identical token lists should compare equal")
	}
	if a.Equal(c) {
		t.Error("different token lists should not compare equal")
	}

	clone := a.Clone()
	clone.Tokens[0].Data = "9s"
	if !a.Equal(b) {
		t.Error("mutating a clone should not affect the original")
	}
}
