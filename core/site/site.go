// Package site groups the entities belonging to one logical processing
// site into a role-tagged bundle. Grouping is a single filtering pass
// over the index; no graph traversal happens here.
package site

import (
	"strings"

	"github.com/GusEllerm/ro-crate-provenance-tools/core/index"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// View builds site bundles from an immutable index.
type View struct {
	idx *index.Index
}

// NewView creates a new site view over idx.
func NewView(idx *index.Index) *View {
	return &View{idx: idx}
}

// Artifacts collects every entity belonging to siteID into role-tagged
// buckets, scanning the index once in source order. An entity matches
// when its id or display name starts with the site prefix; actions also
// match when their inputs include a site_id parameter with that value.
// A site with no matches yields an empty bundle, not an error.
func (v *View) Artifacts(siteID string) *model.SiteBundle {
	bundle := &model.SiteBundle{
		SiteID:      siteID,
		Files:       []model.FileSummary{},
		Directories: []model.DatasetSummary{},
		Actions:     []model.StepRun{},
		Parameters:  []model.ParamSummary{},
	}

	for _, id := range v.idx.IDs {
		ent := v.idx.Entity(id)

		switch {
		case ent.HasType(model.TypeFile):
			if v.matchesPrefix(ent, siteID) {
				bundle.Files = append(bundle.Files, model.SummarizeFile(ent))
			}
		case ent.HasType(model.TypeDataset):
			if v.matchesPrefix(ent, siteID) {
				bundle.Directories = append(bundle.Directories, model.SummarizeDataset(ent))
			}
		case ent.IsActionLike():
			act := v.idx.Action(ent.ID)
			siteIDs := v.siteParams(act)
			if v.matchesPrefix(ent, siteID) || contains(siteIDs, siteID) {
				bundle.Actions = append(bundle.Actions, model.StepRun{
					Action:  model.SummarizeAction(ent),
					Tool:    model.SummarizeTool(v.idx.Tool(act)),
					SiteIDs: siteIDs,
				})
			}
		case ent.HasType(model.TypePropertyValue):
			if ent.Properties.String("name") == "site_id" && ent.Properties["value"] == siteID {
				bundle.Parameters = append(bundle.Parameters, model.SummarizeParam(ent))
			}
		}
	}

	return bundle
}

// matchesPrefix tests the site prefix rule against id and display name.
func (v *View) matchesPrefix(ent *model.Entity, siteID string) bool {
	return strings.HasPrefix(ent.ID, siteID) || strings.HasPrefix(ent.Label(), siteID)
}

// siteParams returns the site_id parameter values among an action's
// inputs, in declaration order.
func (v *View) siteParams(act *model.Action) []string {
	var siteIDs []string
	for _, in := range act.Inputs {
		ent := v.idx.Entity(in)
		if ent == nil || !ent.HasType(model.TypePropertyValue) {
			continue
		}
		if ent.Properties.String("name") != "site_id" {
			continue
		}
		if value, ok := ent.Properties["value"].(string); ok {
			siteIDs = append(siteIDs, value)
		}
	}
	return siteIDs
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
