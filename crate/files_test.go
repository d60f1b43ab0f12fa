package crate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

func fileEntity(id string, props model.Properties) *model.Entity {
	if props == nil {
		props = model.Properties{}
	}
	return &model.Entity{ID: id, Types: []string{"File"}, Properties: props}
}

func TestLocalPath(t *testing.T) {
	t.Run("Joins entity id under the crate root", func(t *testing.T) {
		ent := fileEntity("data/ts.csv", nil)

		path, err := LocalPath(ent, "/crate", PathOptions{})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/crate", "data", "ts.csv"), path)
	})

	t.Run("Prefers contentUrl over id", func(t *testing.T) {
		ent := fileEntity("#ts-entity", model.Properties{"contentUrl": "data/ts.csv"})

		path, err := LocalPath(ent, "/crate", PathOptions{})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/crate", "data", "ts.csv"), path)
	})

	t.Run("Rejects fragment ids", func(t *testing.T) {
		ent := fileEntity("#virtual", nil)

		path, err := LocalPath(ent, "/crate", PathOptions{})

		assert.Empty(t, path)
		var resErr *FileResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "#virtual", resErr.ID)
	})

	t.Run("Rejects remote IRIs", func(t *testing.T) {
		ent := fileEntity("https://example.org/data/ts.csv", nil)

		path, err := LocalPath(ent, "/crate", PathOptions{})

		assert.Empty(t, path)
		require.Error(t, err)
	})

	t.Run("Rejects empty crate root", func(t *testing.T) {
		ent := fileEntity("data/ts.csv", nil)

		path, err := LocalPath(ent, "", PathOptions{})

		assert.Empty(t, path)
		require.Error(t, err)
	})

	t.Run("CheckExists verifies the path on disk", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "ts.csv"), []byte("a,b\n"), 0644))

		ent := fileEntity("data/ts.csv", nil)

		path, err := LocalPath(ent, dir, PathOptions{CheckExists: true})
		require.NoError(t, err)
		assert.FileExists(t, path)

		missing := fileEntity("data/other.csv", nil)
		path, err = LocalPath(missing, dir, PathOptions{CheckExists: true})
		assert.Empty(t, path)
		require.Error(t, err)

		// The same resolution without the check succeeds.
		path, err = LocalPath(missing, dir, PathOptions{})
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})
}

func TestDetectMediaType(t *testing.T) {
	t.Run("Declared encodingFormat wins", func(t *testing.T) {
		ent := fileEntity("data/ts.unknown", model.Properties{"encodingFormat": "text/csv"})

		assert.Equal(t, "text/csv", DetectMediaType(ent))
	})

	t.Run("Legacy fileFormat is honored", func(t *testing.T) {
		ent := fileEntity("data/ts.unknown", model.Properties{"fileFormat": "text/csv"})

		assert.Equal(t, "text/csv", DetectMediaType(ent))
	})

	t.Run("Falls back to the extension table", func(t *testing.T) {
		cases := map[string]string{
			"data/ts.csv":            "text/csv",
			"data/poly.geojson":      "application/geo+json",
			"plot.PNG":               "image/png",
			"notes.md":               "text/markdown",
			"ro-crate-metadata.json": "application/json",
		}
		for id, want := range cases {
			ent := fileEntity(id, nil)
			assert.Equal(t, want, DetectMediaType(ent), "Unexpected media type for %v", id)
		}
	})

	t.Run("Uses the display name before the id", func(t *testing.T) {
		ent := fileEntity("#f1", model.Properties{"name": "plot.png"})

		assert.Equal(t, "image/png", DetectMediaType(ent))
	})

	t.Run("Defaults to octet-stream", func(t *testing.T) {
		ent := fileEntity("data/blob.xyz", nil)

		assert.Equal(t, DefaultMediaType, DetectMediaType(ent))
	})
}

func TestMediaTypePredicates(t *testing.T) {
	assert.True(t, IsCSV("text/csv"))
	assert.True(t, IsCSV("Text/CSV"))
	assert.False(t, IsCSV("application/json"))

	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/svg+xml"))
	assert.False(t, IsImage("text/csv"))

	assert.True(t, IsJSON("application/json"))
	assert.True(t, IsJSON("application/ld+json"))
	assert.True(t, IsJSON("application/geo+json"))
	assert.False(t, IsJSON("text/csv"))
}
