package properties

import (
	"testing"

	"cssc/css/compat"
)

func minifyBlock(t *testing.T, targets compat.Browsers, decls ...Property) string {
	t.Helper()
	out := DeclarationList(decls).Minify(NewAnimationHandler(targets))
	return renderDecls(t, out)
}

func TestHandler_MergesLonghandsIntoShorthand(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation-name", "slide"),
		decl("animation-duration", "1s"),
		decl("animation-timing-function", "ease"),
		decl("animation-iteration-count", "1"),
		decl("animation-direction", "normal"),
		decl("animation-play-state", "running"),
		decl("animation-delay", "0s"),
		decl("animation-fill-mode", "none"),
	)
	if got != "animation:slide 1s" {
		t.Errorf("got %q, want %q", got, "animation:slide 1s")
	}
}

func TestHandler_LonghandOverridesShorthandSlot(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation", "spin 1s"),
		decl("animation-name", "zoom"),
	)
	if got != "animation:zoom 1s" {
		t.Errorf("got %q, want %q", got, "animation:zoom 1s")
	}
}

func TestHandler_FlushesOnConflictUnderUnclaimedPrefix(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation", "spin 1s"),
		decl("-webkit-animation", "zoom 2s"),
	)
	want := "animation:spin 1s;-webkit-animation:zoom 2s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_MergesEqualValuesAcrossPrefixes(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("-webkit-animation", "spin 1s"),
		decl("animation", "spin 1s"),
	)
	want := "-webkit-animation:spin 1s;animation:spin 1s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_OverrideWithinClaimedPrefixIsAbsorbed(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("-webkit-animation", "spin 1s"),
		decl("animation", "spin 1s"),
		decl("-webkit-animation", "zoom 2s"),
	)
	want := "-webkit-animation:zoom 2s;animation:zoom 2s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_RemainderPrefixEmittedAsLonghand(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation", "spin 1s"),
		decl("-webkit-animation-name", "spin"),
	)
	want := "animation:spin 1s;-webkit-animation-name:spin"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_UnequalInstanceCountsFallBackToLonghands(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation", "a 1s, b 2s"),
		decl("animation-name", "c"),
	)
	want := "animation-name:c;" +
		"animation-duration:1s,2s;" +
		"animation-timing-function:ease,ease;" +
		"animation-iteration-count:1,1;" +
		"animation-direction:normal,normal;" +
		"animation-play-state:running,running;" +
		"animation-delay:0s,0s;" +
		"animation-fill-mode:none,none"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_PartialSlotSetStaysLonghands(t *testing.T) {
	// with half the slots never seen there is nothing to merge; the
	// accumulated longhands come back out in canonical slot order
	got := minifyBlock(t, compat.Browsers{},
		decl("animation-name", "slide"),
		decl("animation-duration", "1s"),
		decl("animation-timing-function", "linear"),
		decl("animation-iteration-count", "2"),
	)
	want := "animation-name:slide;" +
		"animation-duration:1s;" +
		"animation-timing-function:linear;" +
		"animation-iteration-count:2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_ConflictFlushWithOnlyNameSlot(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("-webkit-animation-name", "slide"),
		decl("animation-name", "zoom"),
	)
	want := "-webkit-animation-name:slide;animation-name:zoom"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_UnparsedValueFlushesAndPassesThrough(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("animation", "spin 1s"),
		decl("animation-duration", "var(--d)"),
	)
	want := "animation:spin 1s;animation-duration:var(--d)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandler_ExpandsPrefixesForTargets(t *testing.T) {
	targets := compat.Browsers{Chrome: 30}

	got := minifyBlock(t, targets, decl("animation", "spin 1s"))
	want := "-webkit-animation:spin 1s;animation:spin 1s"
	if got != want {
		t.Errorf("shorthand: got %q, want %q", got, want)
	}

	got = minifyBlock(t, targets, decl("animation-delay", "var(--d)"))
	want = "-webkit-animation-delay:var(--d);animation-delay:var(--d)"
	if got != want {
		t.Errorf("unparsed: got %q, want %q", got, want)
	}
}

func TestHandler_NonAnimationPassesThrough(t *testing.T) {
	got := minifyBlock(t, compat.Browsers{},
		decl("color", "red"),
		decl("animation", "spin 1s"),
	)
	want := "color:red;animation:spin 1s"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
