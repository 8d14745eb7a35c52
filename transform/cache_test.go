package transform

import (
	"path/filepath"
	"testing"

	"cssc/config"
)

func TestResultCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	tc := &config.TransformConfig{Minify: true, OutputSuffix: ".min.css"}

	c, err := openCache(path, tc)
	if err != nil {
		t.Fatalf("openCache() error = %v", err)
	}
	defer c.Close()

	hash := hashBytes([]byte(".a{color:red}"))
	if _, found := c.lookup("app.css", hash); found {
		t.Error("lookup should miss on an empty cache")
	}

	if err := c.store("app.css", hash, "out/app.min.css"); err != nil {
		t.Fatalf("store() error = %v", err)
	}

	out, found := c.lookup("app.css", hash)
	if !found || out != "out/app.min.css" {
		t.Errorf("lookup() = (%q, %v), want (out/app.min.css, true)", out, found)
	}

	// changed input content misses
	if _, found := c.lookup("app.css", hashBytes([]byte(".a{color:blue}"))); found {
		t.Error("lookup should miss when the input hash changed")
	}
}

func TestResultCache_SettingsChangeInvalidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	hash := hashBytes([]byte(".a{color:red}"))

	c, err := openCache(path, &config.TransformConfig{Minify: true, OutputSuffix: ".min.css"})
	if err != nil {
		t.Fatalf("openCache() error = %v", err)
	}
	if err := c.store("app.css", hash, "out/app.min.css"); err != nil {
		t.Fatalf("store() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	c2, err := openCache(path, &config.TransformConfig{Minify: false, OutputSuffix: ".min.css"})
	if err != nil {
		t.Fatalf("openCache() reopen error = %v", err)
	}
	defer c2.Close()

	if _, found := c2.lookup("app.css", hash); found {
		t.Error("lookup should miss after a settings change")
	}
}

func TestResultCache_NilSafe(t *testing.T) {
	var c *resultCache

	if _, found := c.lookup("app.css", "x"); found {
		t.Error("nil cache lookup should miss")
	}
	if err := c.store("app.css", "x", "y"); err != nil {
		t.Errorf("nil cache store should be a no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close should be a no-op, got %v", err)
	}
}
