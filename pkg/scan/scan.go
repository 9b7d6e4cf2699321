// Package scan classifies every file below a directory using a bounded
// pool of workers that share one read-only rule set.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/bioreport/pkg/classifier"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/report"
	"golang.org/x/sync/errgroup"
)

// Options controls a directory scan
type Options struct {
	// Workers bounds concurrent classifications; 0 means one per CPU
	Workers int

	// FailFast stops the scan at the first per-file failure
	FailFast bool

	// SkipHidden ignores files and directories whose name starts with "."
	SkipHidden bool

	// Progress, when set, is called after each file with the number of
	// files done and the total. Calls are serialized.
	Progress func(done, total int)
}

// Failure is a file whose classification failed
type Failure struct {
	Path string
	Err  error
}

// Result holds the outcome of a scan
type Result struct {
	Root string

	// Reports are the classified reports sorted by path
	Reports []report.Report

	// Total counts the files examined
	Total int

	// Unclassified counts the files no rule matched
	Unclassified int

	// Failures are sorted by path
	Failures []Failure
}

// Dir classifies all regular files below root.
//
// Per-file failures are collected in the result and do not stop the scan
// unless opts.FailFast is set, in which case the first failure is returned
// alongside the partial result. Cancelling ctx stops the scan.
func Dir(ctx context.Context, c *classifier.Classifier, root string, opts Options) (*Result, error) {
	logger := logging.GetLogger("scan")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", root)
	}
	logger.Info().Str("root", absRoot).Msg("Scanning directory")
	start := time.Now()

	files, err := listFiles(absRoot, opts.SkipHidden)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("files", len(files)).Msg("Total number of files to match")

	type outcome struct {
		report report.Report
		err    error
	}
	outcomes := make([]outcome, len(files))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.Classify(path)
			outcomes[i] = outcome{report: r, err: err}

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(files))
				mu.Unlock()
			}
			if err != nil && opts.FailFast {
				return err
			}
			return nil
		})
	}
	waitErr := g.Wait()

	result := &Result{Root: absRoot, Total: len(files)}
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			result.Failures = append(result.Failures, Failure{Path: files[i], Err: o.err})
		case o.report.Path == "":
			// not reached before cancellation
		case o.report.IsUnclassified():
			result.Unclassified++
		default:
			result.Reports = append(result.Reports, o.report)
		}
	}

	logger.Info().
		Int("reports", len(result.Reports)).
		Int("unclassified", result.Unclassified).
		Int("failures", len(result.Failures)).
		Dur("duration", time.Since(start)).
		Msg("Scan finished")

	if waitErr != nil {
		return result, waitErr
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// listFiles walks root and returns the regular files below it in lexical
// order. Symlinks are kept unless they point at a directory; the classifier
// follows them and treats dangling links as unclassified.
func listFiles(root string, skipHidden bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
		if skipHidden && path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case d.Type().IsRegular():
			files = append(files, path)
		case d.Type()&fs.ModeSymlink != 0:
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
