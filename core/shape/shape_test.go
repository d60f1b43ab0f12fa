package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

func TestDoc(t *testing.T) {
	t.Run("Preserves field order", func(t *testing.T) {
		doc := NewDoc().
			Set("zebra", 1).
			Set("apple", 2).
			Set("mango", 3)

		keys := make([]string, 0, len(doc.Fields))
		for _, f := range doc.Fields {
			keys = append(keys, f.Key)
		}
		assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
	})

	t.Run("Get returns the value or nil", func(t *testing.T) {
		doc := NewDoc().Set("id", "a.csv")

		assert.Equal(t, "a.csv", doc.Get("id"))
		assert.Nil(t, doc.Get("missing"))
	})

	t.Run("MarshalJSON keeps insertion order", func(t *testing.T) {
		doc := NewDoc().
			Set("zebra", 1).
			Set("apple", NewDoc().Set("nested", true)).
			Set("mango", []interface{}{"a", "b"})

		data, err := json.Marshal(doc)

		require.NoError(t, err)
		assert.Equal(t, `{"zebra":1,"apple":{"nested":true},"mango":["a","b"]}`, string(data))
	})

	t.Run("MarshalJSON of empty doc", func(t *testing.T) {
		data, err := json.Marshal(NewDoc())

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})
}

func TestLineagePayload(t *testing.T) {
	rec := &model.LineageRecord{
		Target: model.FileSummary{ID: "nzd0001/ts.csv", Name: "nzd0001/ts.csv", SHA1: "aaa"},
		Producers: []model.Producer{{
			Action: model.ActionSummary{ID: "#extract", Name: "extract"},
			Tool:   &model.ToolSummary{ID: "#tool", Name: "extract_tool"},
			Inputs: model.PartitionedInputs{
				Files:      []model.FileSummary{{ID: "poly.geojson"}},
				Datasets:   []model.DatasetSummary{},
				Parameters: []model.ParamSummary{{ID: "#p", Name: "site_id", Value: "nzd0001"}},
				Other:      []model.EntityRef{},
			},
			Outputs: model.PartitionedOutputs{
				Files:    []model.FileSummary{{ID: "nzd0001/ts.csv"}},
				Datasets: []model.DatasetSummary{},
				Other:    []model.EntityRef{},
			},
		}},
		DirectInputs:  []model.EntityRef{{ID: "poly.geojson"}},
		DirectOutputs: []model.EntityRef{{ID: "nzd0001/ts.csv"}},
		SiteIDs:       []string{"nzd0001"},
	}

	t.Run("Single record shape", func(t *testing.T) {
		doc := Lineage("ts.csv", rec)

		assert.Equal(t, TypeFileLineage, doc.Get("type"))
		assert.Equal(t, "ts.csv", doc.Get("file_selector"))

		lineage, ok := doc.Get("lineage").(*Doc)
		require.True(t, ok)
		file, ok := lineage.Get("file").(*Doc)
		require.True(t, ok)
		assert.Equal(t, "nzd0001/ts.csv", file.Get("id"))

		producers, ok := lineage.Get("producers").([]interface{})
		require.True(t, ok)
		require.Len(t, producers, 1)
	})

	t.Run("Note only appears when set", func(t *testing.T) {
		doc := Lineage("ts.csv", rec)
		lineage := doc.Get("lineage").(*Doc)
		assert.Nil(t, lineage.Get("note"))

		noted := &model.LineageRecord{
			Target: model.FileSummary{ID: "poly.geojson"},
			Note:   "no action lists this entity in its results",
		}
		lineage = Lineage("poly", noted).Get("lineage").(*Doc)
		assert.NotNil(t, lineage.Get("note"))
	})

	t.Run("List shape wraps every record", func(t *testing.T) {
		doc := LineageList("ts", []*model.LineageRecord{rec, rec})

		assert.Equal(t, TypeFileLineageList, doc.Get("type"))
		lineages, ok := doc.Get("lineages").([]interface{})
		require.True(t, ok)
		assert.Len(t, lineages, 2)
	})
}

func TestTraversalPayloads(t *testing.T) {
	graph := &model.TraversalGraph{
		Roots:    []model.FileSummary{{ID: "ts2.csv"}},
		Entities: []model.FileSummary{{ID: "ts2.csv"}, {ID: "ts1.csv"}},
		Steps: []model.Step{{
			ID:     "#resample",
			Action: model.ActionSummary{ID: "#resample"},
			Inputs: model.PartitionedInputs{
				Files:      []model.FileSummary{{ID: "ts1.csv"}},
				Datasets:   []model.DatasetSummary{},
				Parameters: []model.ParamSummary{},
				Other:      []model.EntityRef{},
			},
		}},
		Edges: []model.Edge{
			{Type: model.EdgeGenerated, Action: "#resample", Entity: "ts2.csv"},
		},
		Order:           []string{"#resample", "ts1.csv"},
		DescendantFiles: []model.FileSummary{{ID: "ts2.csv"}},
	}

	t.Run("Ancestry shape", func(t *testing.T) {
		doc := Ancestry("ts2", graph)

		assert.Equal(t, TypeFileAncestry, doc.Get("type"))
		assert.Nil(t, doc.Get("descendant_files"), "Upstream walks carry no descendant files")

		order, ok := doc.Get("order").([]interface{})
		require.True(t, ok)
		assert.Equal(t, []interface{}{"#resample", "ts1.csv"}, order)

		steps, ok := doc.Get("actions").([]interface{})
		require.True(t, ok)
		step := steps[0].(*Doc)
		assert.Nil(t, step.Get("outputs"), "Upstream steps report inputs only")
	})

	t.Run("Descendants shape appends reached files", func(t *testing.T) {
		doc := Descendants("poly", graph)

		assert.Equal(t, TypeFileDescendants, doc.Get("type"))
		files, ok := doc.Get("descendant_files").([]interface{})
		require.True(t, ok)
		assert.Len(t, files, 1)
	})
}

func TestSiteSummaryPayload(t *testing.T) {
	bundle := &model.SiteBundle{
		SiteID: "nzd0001",
		Files:  []model.FileSummary{{ID: "nzd0001/ts.csv"}},
		Directories: []model.DatasetSummary{
			{ID: "nzd0001/", Name: "nzd0001/"},
		},
		Actions: []model.StepRun{{
			Action:  model.ActionSummary{ID: "#extract"},
			SiteIDs: []string{"nzd0001"},
		}},
		Parameters: []model.ParamSummary{{ID: "#p", Name: "site_id", Value: "nzd0001"}},
	}

	t.Run("Buckets appear in fixed order", func(t *testing.T) {
		doc := SiteSummary(bundle, false)

		keys := make([]string, 0, len(doc.Fields))
		for _, f := range doc.Fields {
			keys = append(keys, f.Key)
		}
		assert.Equal(t, []string{"type", "site_id", "files", "directories", "actions"}, keys)
	})

	t.Run("Parameters ride along with includeAll", func(t *testing.T) {
		doc := SiteSummary(bundle, true)

		params, ok := doc.Get("parameters").([]interface{})
		require.True(t, ok)
		assert.Len(t, params, 1)
	})
}
