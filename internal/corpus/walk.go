// Package corpus turns a directory tree into the in-memory content
// units the engine scans. It owns path filtering, binary detection and
// language inference; the engine itself never touches the filesystem.
package corpus

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/ghostai/ghostscan/internal/types"
)

// Options controls corpus collection.
type Options struct {
	Root       string
	Repository string
	// IncludeGlobs / ExcludeGlobs are comma-separated doublestar
	// patterns; includes act as a positive filter when present,
	// excludes are subtracted last.
	IncludeGlobs string
	ExcludeGlobs string
	// MaxBytes skips files larger than this; 0 means 1 MiB.
	MaxBytes int64
	// DefaultExcludes applies the built-in directory/file exclude list
	// (node_modules, lockfiles, images, ...).
	DefaultExcludes bool
	// Skip, when non-nil, drops a unit before it is read into memory.
	// Used for incremental scans keyed on content hashes.
	Skip func(relPath string, data []byte) bool
}

// Collect walks opts.Root and returns one ContentUnit per eligible
// file, in walk order. Unreadable files are skipped, not failed: the
// engine reports evaluation problems per unit, and ingestion mirrors
// that leniency.
func Collect(ctx context.Context, opts Options) ([]types.ContentUnit, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	var units []types.ContentUnit
	err := filepath.WalkDir(opts.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if opts.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(opts.Root, p)
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, opts.IncludeGlobs, opts.ExcludeGlobs) {
			return nil
		}
		if opts.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		info, _ := d.Info()
		if info != nil && info.Size() > maxBytes {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if looksBinary(b) || looksNonTextMIME(rel, b) {
			return nil
		}
		if opts.Skip != nil && opts.Skip(rel, b) {
			return nil
		}
		units = append(units, types.ContentUnit{
			Repository: opts.Repository,
			FilePath:   rel,
			Language:   DetectLanguage(rel),
			Text:       string(b),
		})
		return nil
	})
	if err != nil {
		return units, err
	}
	return units, nil
}

func allowedByGlobs(relPath, include, exclude string) bool {
	includes := parseGlobsList(include)
	excludes := parseGlobsList(exclude)
	if len(includes) > 0 && !matchAnyGlob(relPath, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(relPath, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := len(b)
	if n > sniff {
		n = sniff
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME skips clearly non-text content by extension and a
// tiny header sniff, in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 2 && b[0] == 'P' && b[1] == 'K' {
		return true
	}
	return false
}
