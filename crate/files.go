package crate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// PathOptions controls local path resolution.
type PathOptions struct {
	// CheckExists requires the resolved path to exist on disk. Leave it
	// false for planning or dry-run use where the crate payload may not
	// be materialized.
	CheckExists bool
}

// FileResolutionError reports a File entity that could not be mapped to
// a local path. The failure is scoped to the single call; retrying with
// CheckExists disabled is a valid recovery.
type FileResolutionError struct {
	ID     string
	Path   string
	Reason string
}

func (e *FileResolutionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cannot resolve %q to a local file (%v): %v", e.ID, e.Path, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %q to a local file: %v", e.ID, e.Reason)
}

// LocalPath maps a File entity to a path under rootDir. The declared
// contentUrl wins when present, the entity id is the fallback. Fragment
// ids (#...) and remote IRIs never resolve locally.
func LocalPath(ent *model.Entity, rootDir string, opts PathOptions) (string, error) {
	if rootDir == "" {
		return "", &FileResolutionError{ID: ent.ID, Reason: "crate has no root directory"}
	}

	locator := ent.ContentURL()
	if locator == "" {
		locator = ent.ID
	}
	if strings.HasPrefix(locator, "#") {
		return "", &FileResolutionError{ID: ent.ID, Reason: "fragment id has no local path"}
	}
	if strings.Contains(locator, "://") {
		return "", &FileResolutionError{ID: ent.ID, Reason: "remote IRI has no local path"}
	}

	path := filepath.FromSlash(locator)
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}

	if opts.CheckExists {
		if _, err := os.Stat(path); err != nil {
			return "", &FileResolutionError{ID: ent.ID, Path: path, Reason: "path does not exist"}
		}
	}

	return path, nil
}
