package transform

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"cssc/config"
	"cssc/state"
)

// buildOutputPath returns constructed output file path/name based on the
// source path, destination directory and configuration. Source directory
// structure is preserved under the destination; the configured suffix
// replaces the source extension.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	outDir := filepath.Join(dst, filepath.Dir(src))

	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Transform.SlugifyNames {
		baseName = slug.Make(baseName)
	}
	return filepath.Join(outDir, config.CleanFileName(baseName)+env.Cfg.Transform.OutputSuffix)
}
