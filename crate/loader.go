// Package crate loads provenance crate metadata and resolves File
// entities to local paths and media types.
package crate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// MetadataFilename is the conventional descriptor file name inside a
// crate directory.
const MetadataFilename = "ro-crate-metadata.json"

// LoadError reports a malformed or incomplete metadata package. Loading
// aborts entirely; no partially built crate is ever returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load crate metadata from %v: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type metadataDoc struct {
	Context interface{}     `json:"@context"`
	Graph   []*model.Entity `json:"@graph"`
}

// FromFile loads a crate from its metadata file. The crate root
// directory for file resolution is the metadata file's parent.
func FromFile(metadataPath string) (*model.Crate, error) {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, &LoadError{Path: metadataPath, Err: err}
	}
	return fromBytes(data, metadataPath, filepath.Dir(metadataPath))
}

// FromDir loads a crate from a directory containing the conventional
// ro-crate-metadata.json descriptor at its root.
func FromDir(crateDir string) (*model.Crate, error) {
	crate, err := FromFile(filepath.Join(crateDir, MetadataFilename))
	if err != nil {
		return nil, err
	}
	crate.RootDir = crateDir
	return crate, nil
}

// New wraps an in-memory entity list into a crate without reading any
// file. The root entity is looked up with the same descriptor
// convention as the file loaders but, matching an in-memory graph's
// looser contract, its absence is not an error.
func New(graph []*model.Entity, rootDir string) *model.Crate {
	root, _ := findRoot(graph)
	return &model.Crate{Graph: graph, Root: root, RootDir: rootDir}
}

// fromBytes decodes the metadata document. Bytes pass through a JSONC
// translation first so hand-edited crates with comments or trailing
// commas still load.
func fromBytes(data []byte, path string, rootDir string) (*model.Crate, error) {
	var doc metadataDoc
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(doc.Graph) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("metadata has no @graph entities")}
	}

	root, err := findRoot(doc.Graph)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return &model.Crate{Graph: doc.Graph, Root: root, RootDir: rootDir}, nil
}

// findRoot locates the crate's root entity: the metadata descriptor's
// about reference when present, the conventional "./" otherwise. The
// referenced entity must exist in the graph.
func findRoot(graph []*model.Entity) (*model.Entity, error) {
	rootID := "./"
	for _, ent := range graph {
		if ent.ID == MetadataFilename || strings.HasSuffix(ent.ID, "/"+MetadataFilename) {
			if about := ent.Properties.Ref("about"); about != "" {
				rootID = about
			}
			break
		}
	}

	for _, ent := range graph {
		if ent.ID == rootID {
			return ent, nil
		}
	}
	return nil, fmt.Errorf("declared root %q not found in @graph", rootID)
}
