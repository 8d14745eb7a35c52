package values

import "testing"

func TestParseEasingFunction_Keywords(t *testing.T) {
	for _, kw := range []string{"linear", "ease", "ease-in", "ease-out", "ease-in-out", "step-start", "step-end"} {
		e, err := ParseEasingFunction(stream(kw))
		if err != nil {
			t.Errorf("ParseEasingFunction(%q) error = %v", kw, err)
			continue
		}
		if e.Kind != EasingKeyword || e.Keyword != kw {
			t.Errorf("ParseEasingFunction(%q) = %+v", kw, e)
		}
	}

	// case insensitive, stored lowercased
	e, err := ParseEasingFunction(stream("EASE"))
	if err != nil {
		t.Fatalf("ParseEasingFunction(EASE) error = %v", err)
	}
	if e.Keyword != "ease" {
		t.Errorf("keyword not lowercased: %q", e.Keyword)
	}
}

func TestParseEasingFunction_CubicBezier(t *testing.T) {
	e, err := ParseEasingFunction(stream("cubic-bezier(.42, 0, 1, 1)"))
	if err != nil {
		t.Fatalf("ParseEasingFunction() error = %v", err)
	}
	if e.Kind != EasingCubicBezier || e.X1 != 0.42 || e.Y1 != 0 || e.X2 != 1 || e.Y2 != 1 {
		t.Errorf("unexpected curve: %+v", e)
	}
}

func TestParseEasingFunction_Steps(t *testing.T) {
	e, err := ParseEasingFunction(stream("steps(4)"))
	if err != nil {
		t.Fatalf("ParseEasingFunction(steps(4)) error = %v", err)
	}
	if e.Kind != EasingSteps || e.Steps != 4 || e.Position != StepEnd {
		t.Errorf("unexpected steps: %+v", e)
	}

	e, err = ParseEasingFunction(stream("steps(3, jump-both)"))
	if err != nil {
		t.Fatalf("ParseEasingFunction(steps(3, jump-both)) error = %v", err)
	}
	if e.Steps != 3 || e.Position != StepJumpBoth {
		t.Errorf("unexpected steps: %+v", e)
	}
}

func TestParseEasingFunction_Errors(t *testing.T) {
	for _, in := range []string{"bounce", "steps(2, sideways)", "cubic-bezier(1, 2, 3)", "50%"} {
		if _, err := ParseEasingFunction(stream(in)); err == nil {
			t.Errorf("ParseEasingFunction(%q) expected error", in)
		}
	}
}

func TestEasingIsEase(t *testing.T) {
	if !Ease().IsEase() {
		t.Error("default ease should report IsEase")
	}
	bezier := EasingFunction{Kind: EasingCubicBezier, X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}
	if !bezier.IsEase() {
		t.Error("cubic-bezier(0.25, 0.1, 0.25, 1) should report IsEase")
	}
	if (EasingFunction{Kind: EasingKeyword, Keyword: "linear"}).IsEase() {
		t.Error("linear should not report IsEase")
	}
}

func TestEasingToCSS(t *testing.T) {
	tests := []struct {
		in     EasingFunction
		minify bool
		want   string
	}{
		{EasingFunction{Kind: EasingKeyword, Keyword: "linear"}, true, "linear"},
		{EasingFunction{Kind: EasingCubicBezier, X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}, true, "cubic-bezier(.25,.1,.25,1)"},
		{EasingFunction{Kind: EasingCubicBezier, X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}, false, "cubic-bezier(0.25, 0.1, 0.25, 1)"},
		{EasingFunction{Kind: EasingSteps, Steps: 1, Position: StepStart}, true, "step-start"},
		{EasingFunction{Kind: EasingSteps, Steps: 1, Position: StepEnd}, true, "step-end"},
		{EasingFunction{Kind: EasingSteps, Steps: 4, Position: StepEnd}, true, "steps(4)"},
		{EasingFunction{Kind: EasingSteps, Steps: 3, Position: StepJumpBoth}, true, "steps(3,jump-both)"},
		{EasingFunction{Kind: EasingSteps, Steps: 3, Position: StepJumpBoth}, false, "steps(3, jump-both)"},
	}
	for _, tt := range tests {
		if got := render(t, tt.in, tt.minify); got != tt.want {
			t.Errorf("%+v (minify=%v) = %q, want %q", tt.in, tt.minify, got, tt.want)
		}
	}
}

func TestIsEasingIdent(t *testing.T) {
	if !IsEasingIdent("Ease-In") {
		t.Error("IsEasingIdent should be case insensitive")
	}
	if IsEasingIdent("spin") {
		t.Error("arbitrary identifier should not be an easing keyword")
	}
}
