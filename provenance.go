// Package provenance provides lineage queries over Workflow Run
// provenance crates: load a crate's metadata, then ask what produced a
// file, what is transitively upstream or downstream of it, and what
// belongs to one processing site. Results can be rendered into a
// compact textual form for language-model prompts.
package provenance

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/GusEllerm/ro-crate-provenance-tools/core/index"
	"github.com/GusEllerm/ro-crate-provenance-tools/core/lineage"
	"github.com/GusEllerm/ro-crate-provenance-tools/core/resolve"
	"github.com/GusEllerm/ro-crate-provenance-tools/core/shape"
	"github.com/GusEllerm/ro-crate-provenance-tools/core/site"
	"github.com/GusEllerm/ro-crate-provenance-tools/crate"
	"github.com/GusEllerm/ro-crate-provenance-tools/helper"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
	"github.com/GusEllerm/ro-crate-provenance-tools/toon"
)

// Encoder renders a shaped document into the compact prompt form.
type Encoder interface {
	Encode(doc *shape.Doc) string
}

// Crate provides a unified interface to all query components over one
// loaded provenance crate. Everything behind it is immutable after
// construction, so concurrent queries need no locking.
type Crate struct {
	Data     *model.Crate
	Index    *index.Index
	Resolver *resolve.Resolver
	Engine   *lineage.Engine
	Sites    *site.View
	// Encoder renders compact prompt payloads. Setting it to nil
	// degrades the Toon* methods to order-preserving JSON.
	Encoder Encoder
	// Logging
	log *slog.Logger
	id  string
}

// FromFile loads a crate from its ro-crate-metadata.json file.
func FromFile(metadataPath string) (*Crate, error) {
	data, err := crate.FromFile(metadataPath)
	if err != nil {
		return nil, helper.NewError("load crate metadata", err)
	}
	return New(data)
}

// FromDir loads a crate from a directory containing
// ro-crate-metadata.json at its root.
func FromDir(crateDir string) (*Crate, error) {
	data, err := crate.FromDir(crateDir)
	if err != nil {
		return nil, helper.NewError("load crate metadata", err)
	}
	return New(data)
}

// FromGraph wraps an in-memory entity list; rootDir may be empty when
// no local file resolution is needed.
func FromGraph(graph []*model.Entity, rootDir string) (*Crate, error) {
	return New(crate.New(graph, rootDir))
}

// New creates a Crate with all query components initialized over data.
func New(data *model.Crate) (*Crate, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	idx, err := index.Build(data.Graph)
	if err != nil {
		return nil, helper.NewError("build entity index", err)
	}

	resolver := resolve.NewResolver(idx)

	c := &Crate{
		Data:     data,
		Index:    idx,
		Resolver: resolver,
		Engine:   lineage.NewEngine(idx, resolver),
		Sites:    site.NewView(idx),
		Encoder:  toon.NewEncoder(nil),
		log:      logger,
		id:       uuid.New().String(),
	}

	c.log.Info("Loaded provenance crate",
		slog.String("crate", c.id),
		slog.Int("entities", len(data.Graph)),
		slog.Int("actions", len(idx.Actions)),
		slog.Int("dangling_refs", len(idx.Dangling)),
	)

	return c, nil
}

// Resolve maps a token (entity id, file name or path fragment) to
// exactly one entity.
func (c *Crate) Resolve(token string) (*model.Entity, error) {
	return c.Resolver.Resolve(token)
}

// Warnings returns the dangling action references recorded while the
// index was built.
func (c *Crate) Warnings() []index.DanglingRef {
	return c.Index.Dangling
}

// Lineage returns the one-hop production record for the entity
// matching token.
func (c *Crate) Lineage(token string) (*model.LineageRecord, error) {
	return c.Engine.Lineage(token)
}

// LineageAll returns one lineage record per matched entity.
func (c *Crate) LineageAll(token string) ([]*model.LineageRecord, error) {
	return c.Engine.LineageAll(token)
}

// Ancestry returns the upstream closure of the entity matching token,
// nearest-first.
func (c *Crate) Ancestry(token string, config model.TraversalConfig) (*model.TraversalGraph, error) {
	return c.Engine.Ancestry(token, config)
}

// Descendants returns the downstream closure of the entity matching
// token, nearest-first.
func (c *Crate) Descendants(token string, config model.TraversalConfig) (*model.TraversalGraph, error) {
	return c.Engine.Descendants(token, config)
}

// SiteArtifacts groups every entity belonging to one processing site
// into role-tagged buckets. A site with no matches yields an empty
// bundle.
func (c *Crate) SiteArtifacts(siteID string) *model.SiteBundle {
	return c.Sites.Artifacts(siteID)
}

// LocalPath resolves token to a File entity and maps it to a path
// under the crate root.
func (c *Crate) LocalPath(token string, opts crate.PathOptions) (string, error) {
	ent, err := c.Resolver.Resolve(token)
	if err != nil {
		return "", err
	}
	return crate.LocalPath(ent, c.Data.RootDir, opts)
}

// MediaType guesses the media type of the entity matching token.
func (c *Crate) MediaType(token string) (string, error) {
	ent, err := c.Resolver.Resolve(token)
	if err != nil {
		return "", err
	}
	return crate.DetectMediaType(ent), nil
}

// ReadBytes returns the raw content of the file matching token.
func (c *Crate) ReadBytes(token string) ([]byte, error) {
	path, err := c.LocalPath(token, crate.PathOptions{CheckExists: true})
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// ReadText returns the content of the file matching token as a string.
func (c *Crate) ReadText(token string) (string, error) {
	data, err := c.ReadBytes(token)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Files returns a summary for every File entity, in source order.
func (c *Crate) Files() []model.FileSummary {
	files := []model.FileSummary{}
	for _, id := range c.Index.ByType[model.TypeFile] {
		files = append(files, model.SummarizeFile(c.Index.Entity(id)))
	}
	return files
}

// ImageFiles returns a summary for every File entity whose media type
// is an image, in source order.
func (c *Crate) ImageFiles() []model.FileSummary {
	images := []model.FileSummary{}
	for _, id := range c.Index.ByType[model.TypeFile] {
		ent := c.Index.Entity(id)
		if crate.IsImage(crate.DetectMediaType(ent)) {
			images = append(images, model.SummarizeFile(ent))
		}
	}
	return images
}

// ToonLineage renders the direct lineage of the entities matching
// token. A single match uses the single-record payload shape.
func (c *Crate) ToonLineage(token string) (string, error) {
	records, err := c.Engine.LineageAll(token)
	if err != nil {
		return "", err
	}
	var doc *shape.Doc
	if len(records) == 1 {
		doc = shape.Lineage(token, records[0])
	} else {
		doc = shape.LineageList(token, records)
	}
	return c.encode(doc)
}

// ToonAncestry renders the upstream closure of the entity matching
// token.
func (c *Crate) ToonAncestry(token string, config model.TraversalConfig) (string, error) {
	graph, err := c.Engine.Ancestry(token, config)
	if err != nil {
		return "", err
	}
	return c.encode(shape.Ancestry(token, graph))
}

// ToonDescendants renders the downstream closure of the entity
// matching token.
func (c *Crate) ToonDescendants(token string, config model.TraversalConfig) (string, error) {
	graph, err := c.Engine.Descendants(token, config)
	if err != nil {
		return "", err
	}
	return c.encode(shape.Descendants(token, graph))
}

// ToonSiteSummary renders a site-centric slice of the crate.
func (c *Crate) ToonSiteSummary(siteID string, includeAll bool) (string, error) {
	return c.encode(shape.SiteSummary(c.Sites.Artifacts(siteID), includeAll))
}

// encode hands a shaped document to the encoder collaborator, falling
// back to order-preserving JSON when none is wired.
func (c *Crate) encode(doc *shape.Doc) (string, error) {
	if c.Encoder != nil {
		return c.Encoder.Encode(doc), nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", helper.NewError("marshal canonical result", err)
	}
	return string(data), nil
}
