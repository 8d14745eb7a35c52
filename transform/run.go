// Package transform implements the minify subcommand: it finds CSS
// files, runs declaration compaction and color fallback generation over
// them and writes the results out.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssc/css"
	"cssc/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("transform")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	env.OutputDir = dst

	var cache *resultCache
	if path := env.Cfg.Transform.CachePath; len(path) > 0 {
		if cache, err = openCache(path, &env.Cfg.Transform); err != nil {
			log.Warn("Transform cache disabled", zap.Error(err))
		} else {
			defer cache.Close()
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, cache, log)
}

// process handles the core logic independently of CLI framework. It
// determines the input type (directory or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, cache *resultCache, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, cache, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if !isStylesheetFile(src) {
		return fmt.Errorf("input was not recognized as CSS stylesheet (%s)", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open file (%s): %w", src, err)
	}
	defer file.Close()

	return processSheet(ctx, file, filepath.Base(src), dst, cache, log)
}

// processDir walks directory tree finding css files and processes them.
func processDir(ctx context.Context, dir, dst string, cache *resultCache, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isStylesheetFile(path) {
			log.Debug("Skipping file, not recognized as stylesheet", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processSheet(ctx, file, src, dst, cache, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processSheet processes single stylesheet. "src" is part of the source
// path (always including file name) relative to the original path. "dst"
// is the destination directory where the result should be written.
func processSheet(ctx context.Context, r io.Reader, src, dst string, cache *resultCache, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Transformation starting", zap.String("from", src))
	defer func(start time.Time) {
		// if multiple stylesheets are being processed we do not want to stop
		if r := recover(); r != nil {
			log.Error("Transformation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("transformation panic: %v", r)
		} else {
			log.Info("Transformation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read css source (%s): %w", src, err)
	}

	inputHash := hashBytes(data)
	if prev, ok := cache.lookup(src, inputHash); ok && !env.Overwrite {
		if _, err := os.Stat(prev); err == nil {
			outputName = prev
			log.Debug("Input unchanged, skipping", zap.String("file", src))
			return nil
		}
	}

	sheet := css.NewParser(log).Parse(data, src)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet parsing", zap.String("source", src), zap.String("warning", w))
	}

	sheet.Minify(env.Cfg.Transform.Targets)

	outputName = buildOutputPath(src, dst, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}

	werr := sheet.WriteTo(out, env.Cfg.Transform.Minify)
	if err := out.Close(); err != nil {
		werr = multierr.Append(werr, err)
	}
	if werr != nil {
		return fmt.Errorf("unable to write output (%s): %w", outputName, werr)
	}

	if err := cache.store(src, inputHash, outputName); err != nil {
		log.Warn("Unable to update transform cache", zap.Error(err))
	}

	// Store transformation result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData("input/"+filepath.ToSlash(src), data)
		env.Rpt.Store("result/"+filepath.ToSlash(src), outputName)
	}
	return nil
}

func isStylesheetFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}
