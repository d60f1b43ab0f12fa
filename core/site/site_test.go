package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GusEllerm/ro-crate-provenance-tools/core/index"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

func ent(id string, types []string, props model.Properties) *model.Entity {
	if props == nil {
		props = model.Properties{}
	}
	return &model.Entity{ID: id, Types: types, Properties: props}
}

func siteGraph() []*model.Entity {
	return []*model.Entity{
		ent("nzd0001_poly.geojson", []string{"File"}, model.Properties{"name": "nzd0001_poly.geojson"}),
		ent("nzd0001/ts.csv", []string{"File"}, model.Properties{"alternateName": "nzd0001/ts.csv"}),
		ent("sar0002_poly.geojson", []string{"File"}, model.Properties{"name": "sar0002_poly.geojson"}),
		ent("nzd0001/", []string{"Dataset"}, model.Properties{"name": "nzd0001/"}),
		ent("#param-nzd0001", []string{"PropertyValue"}, model.Properties{
			"name": "site_id", "value": "nzd0001",
		}),
		ent("#param-other", []string{"PropertyValue"}, model.Properties{
			"name": "threshold", "value": "0.5",
		}),
		ent("#tool", []string{"SoftwareApplication"}, model.Properties{"name": "extract"}),
		ent("#extract-nzd0001", []string{"CreateAction"}, model.Properties{
			"name":       "extract nzd0001",
			"object":     []interface{}{"nzd0001_poly.geojson", "#param-nzd0001"},
			"result":     "nzd0001/ts.csv",
			"instrument": map[string]interface{}{"@id": "#tool"},
		}),
		ent("#extract-sar0002", []string{"CreateAction"}, model.Properties{
			"object": "sar0002_poly.geojson",
		}),
	}
}

func newView(t *testing.T, graph []*model.Entity) *View {
	t.Helper()
	idx, err := index.Build(graph)
	require.NoError(t, err)
	return NewView(idx)
}

func TestArtifacts(t *testing.T) {
	view := newView(t, siteGraph())

	t.Run("Groups matching entities into role buckets", func(t *testing.T) {
		bundle := view.Artifacts("nzd0001")

		assert.Equal(t, "nzd0001", bundle.SiteID)

		require.Len(t, bundle.Files, 2)
		assert.Equal(t, "nzd0001_poly.geojson", bundle.Files[0].ID)
		assert.Equal(t, "nzd0001/ts.csv", bundle.Files[1].ID)

		require.Len(t, bundle.Directories, 1)
		assert.Equal(t, "nzd0001/", bundle.Directories[0].ID)

		require.Len(t, bundle.Actions, 1)
		assert.Equal(t, "#extract-nzd0001", bundle.Actions[0].Action.ID)
		assert.Equal(t, []string{"nzd0001"}, bundle.Actions[0].SiteIDs)
		require.NotNil(t, bundle.Actions[0].Tool)
		assert.Equal(t, "#tool", bundle.Actions[0].Tool.ID)

		require.Len(t, bundle.Parameters, 1)
		assert.Equal(t, "#param-nzd0001", bundle.Parameters[0].ID)
	})

	t.Run("Excludes other sites sharing a substring", func(t *testing.T) {
		bundle := view.Artifacts("nzd0001")

		for _, f := range bundle.Files {
			assert.NotEqual(t, "sar0002_poly.geojson", f.ID)
		}
		for _, a := range bundle.Actions {
			assert.NotEqual(t, "#extract-sar0002", a.Action.ID)
		}
	})

	t.Run("Matches actions through the site parameter alone", func(t *testing.T) {
		// The action id "#extract-nzd0001" does not start with the site
		// prefix; only the site_id parameter ties it to the site.
		bundle := view.Artifacts("nzd0001")

		require.Len(t, bundle.Actions, 1)
	})

	t.Run("Each entity lands in exactly one bucket", func(t *testing.T) {
		bundle := view.Artifacts("nzd0001")

		seen := map[string]int{}
		for _, f := range bundle.Files {
			seen[f.ID]++
		}
		for _, d := range bundle.Directories {
			seen[d.ID]++
		}
		for _, a := range bundle.Actions {
			seen[a.Action.ID]++
		}
		for _, p := range bundle.Parameters {
			seen[p.ID]++
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "Entity %v appeared in more than one bucket", id)
		}
	})

	t.Run("Unknown site yields an empty bundle", func(t *testing.T) {
		bundle := view.Artifacts("abc9999")

		assert.True(t, bundle.Empty())
		assert.NotNil(t, bundle.Files, "Buckets should be empty lists, not nil")
	})

	t.Run("Bundles are deterministic across calls", func(t *testing.T) {
		first := view.Artifacts("nzd0001")
		second := view.Artifacts("nzd0001")

		assert.Equal(t, first, second)
	})
}
