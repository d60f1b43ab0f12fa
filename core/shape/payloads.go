package shape

import (
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// Payload type tags, mirrored in the encoded output so a consumer can
// tell the shapes apart.
const (
	TypeFileLineage     = "FileLineage"
	TypeFileLineageList = "FileLineageList"
	TypeFileAncestry    = "FileAncestry"
	TypeFileDescendants = "FileDescendants"
	TypeSiteSummary     = "SiteSummary"
)

// Lineage shapes a single direct-lineage record.
func Lineage(selector string, rec *model.LineageRecord) *Doc {
	return NewDoc().
		Set("type", TypeFileLineage).
		Set("file_selector", selector).
		Set("lineage", lineageDoc(rec))
}

// LineageList shapes lineage records for every entity a selector
// matched.
func LineageList(selector string, recs []*model.LineageRecord) *Doc {
	items := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		items = append(items, lineageDoc(rec))
	}
	return NewDoc().
		Set("type", TypeFileLineageList).
		Set("file_selector", selector).
		Set("lineages", items)
}

// Ancestry shapes an upstream closure, nearest-first.
func Ancestry(selector string, graph *model.TraversalGraph) *Doc {
	return traversalDoc(TypeFileAncestry, selector, graph)
}

// Descendants shapes a downstream closure, nearest-first, with the
// reached files appended.
func Descendants(selector string, graph *model.TraversalGraph) *Doc {
	doc := traversalDoc(TypeFileDescendants, selector, graph)
	doc.Set("descendant_files", fileList(graph.DescendantFiles))
	return doc
}

// SiteSummary shapes a site bundle with its buckets in the fixed order
// files, directories, actions. Parameters ride along when includeAll is
// set.
func SiteSummary(bundle *model.SiteBundle, includeAll bool) *Doc {
	actions := make([]interface{}, 0, len(bundle.Actions))
	for _, run := range bundle.Actions {
		actions = append(actions, NewDoc().
			Set("action", actionDoc(run.Action)).
			Set("tool", toolDoc(run.Tool)).
			Set("site_ids", stringList(run.SiteIDs)))
	}

	doc := NewDoc().
		Set("type", TypeSiteSummary).
		Set("site_id", bundle.SiteID).
		Set("files", fileList(bundle.Files)).
		Set("directories", datasetList(bundle.Directories)).
		Set("actions", actions)

	if includeAll {
		params := make([]interface{}, 0, len(bundle.Parameters))
		for _, p := range bundle.Parameters {
			params = append(params, paramDoc(p))
		}
		doc.Set("parameters", params)
	}

	return doc
}

func traversalDoc(payloadType, selector string, graph *model.TraversalGraph) *Doc {
	steps := make([]interface{}, 0, len(graph.Steps))
	for _, step := range graph.Steps {
		stepDoc := NewDoc().
			Set("id", step.ID).
			Set("action", actionDoc(step.Action)).
			Set("tool", toolDoc(step.Tool)).
			Set("inputs", partitionedInputsDoc(step.Inputs))
		if payloadType == TypeFileDescendants {
			stepDoc.Set("outputs", partitionedOutputsDoc(step.Outputs))
		}
		steps = append(steps, stepDoc)
	}

	edges := make([]interface{}, 0, len(graph.Edges))
	for _, edge := range graph.Edges {
		edges = append(edges, NewDoc().
			Set("type", edge.Type).
			Set("action", edge.Action).
			Set("entity", edge.Entity))
	}

	return NewDoc().
		Set("type", payloadType).
		Set("file_selector", selector).
		Set("root_files", fileList(graph.Roots)).
		Set("entities", fileList(graph.Entities)).
		Set("actions", steps).
		Set("edges", edges).
		Set("order", stringList(graph.Order))
}

func lineageDoc(rec *model.LineageRecord) *Doc {
	producers := make([]interface{}, 0, len(rec.Producers))
	for _, p := range rec.Producers {
		producers = append(producers, NewDoc().
			Set("action", actionDoc(p.Action)).
			Set("tool", toolDoc(p.Tool)).
			Set("inputs", partitionedInputsDoc(p.Inputs)).
			Set("outputs", partitionedOutputsDoc(p.Outputs)))
	}

	doc := NewDoc().
		Set("file", fileDoc(rec.Target)).
		Set("producers", producers).
		Set("direct_inputs", refList(rec.DirectInputs)).
		Set("direct_outputs", refList(rec.DirectOutputs)).
		Set("site_ids", stringList(rec.SiteIDs))
	if rec.Note != "" {
		doc.Set("note", rec.Note)
	}
	return doc
}

func partitionedInputsDoc(p model.PartitionedInputs) *Doc {
	params := make([]interface{}, 0, len(p.Parameters))
	for _, param := range p.Parameters {
		params = append(params, paramDoc(param))
	}
	return NewDoc().
		Set("files", fileList(p.Files)).
		Set("datasets", datasetList(p.Datasets)).
		Set("parameters", params).
		Set("other", refList(p.Other))
}

func partitionedOutputsDoc(p model.PartitionedOutputs) *Doc {
	return NewDoc().
		Set("files", fileList(p.Files)).
		Set("datasets", datasetList(p.Datasets)).
		Set("other", refList(p.Other))
}

// fileDoc keeps every key, empty or not, so that lists of files stay
// uniform and tabularizable downstream.
func fileDoc(f model.FileSummary) *Doc {
	return NewDoc().
		Set("id", f.ID).
		Set("name", f.Name).
		Set("sha1", f.SHA1).
		Set("encodingFormat", f.EncodingFormat)
}

func datasetDoc(d model.DatasetSummary) *Doc {
	return NewDoc().
		Set("id", d.ID).
		Set("name", d.Name)
}

func paramDoc(p model.ParamSummary) *Doc {
	return NewDoc().
		Set("id", p.ID).
		Set("name", p.Name).
		Set("value", p.Value)
}

func actionDoc(a model.ActionSummary) *Doc {
	return NewDoc().
		Set("id", a.ID).
		Set("name", a.Name).
		Set("startTime", a.StartTime).
		Set("endTime", a.EndTime)
}

func toolDoc(t *model.ToolSummary) interface{} {
	if t == nil {
		return nil
	}
	return NewDoc().
		Set("id", t.ID).
		Set("name", t.Name).
		Set("inputs", stringList(t.Inputs)).
		Set("outputs", stringList(t.Outputs))
}

func refDoc(r model.EntityRef) *Doc {
	return NewDoc().
		Set("id", r.ID).
		Set("name", r.Name)
}

func fileList(files []model.FileSummary) []interface{} {
	list := make([]interface{}, 0, len(files))
	for _, f := range files {
		list = append(list, fileDoc(f))
	}
	return list
}

func datasetList(datasets []model.DatasetSummary) []interface{} {
	list := make([]interface{}, 0, len(datasets))
	for _, d := range datasets {
		list = append(list, datasetDoc(d))
	}
	return list
}

func refList(refs []model.EntityRef) []interface{} {
	list := make([]interface{}, 0, len(refs))
	for _, r := range refs {
		list = append(list, refDoc(r))
	}
	return list
}

func stringList(values []string) []interface{} {
	list := make([]interface{}, 0, len(values))
	for _, v := range values {
		list = append(list, v)
	}
	return list
}
