package transform

import (
	"path/filepath"
	"testing"

	"cssc/config"
	"cssc/state"
)

func envWith(tc config.TransformConfig) *state.LocalEnv {
	return &state.LocalEnv{Cfg: &config.Config{Transform: tc}}
}

func TestBuildOutputPath(t *testing.T) {
	env := envWith(config.TransformConfig{OutputSuffix: ".min.css"})

	got := buildOutputPath(filepath.Join("styles", "app.css"), string(filepath.Separator)+"out", env)
	want := filepath.Join(string(filepath.Separator)+"out", "styles", "app.min.css")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Suffix(t *testing.T) {
	env := envWith(config.TransformConfig{OutputSuffix: ".out.css"})

	got := buildOutputPath("app.css", "dst", env)
	want := filepath.Join("dst", "app.out.css")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Slugify(t *testing.T) {
	env := envWith(config.TransformConfig{OutputSuffix: ".min.css", SlugifyNames: true})

	got := buildOutputPath("My Fancy Styles.css", "dst", env)
	want := filepath.Join("dst", "my-fancy-styles.min.css")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}
