// Package lineage implements the graph-traversal core: direct lineage,
// upstream closure (ancestry) and downstream closure (descendants) over
// the producer/consumer edges of an indexed crate.
package lineage

import (
	"github.com/GusEllerm/ro-crate-provenance-tools/core/index"
	"github.com/GusEllerm/ro-crate-provenance-tools/core/resolve"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// Engine runs lineage queries against an immutable index. Traversals are
// pure in-memory walks; nothing is mutated, so concurrent queries are
// safe.
type Engine struct {
	idx      *index.Index
	resolver *resolve.Resolver
}

// NewEngine creates a new lineage engine.
func NewEngine(idx *index.Index, resolver *resolve.Resolver) *Engine {
	return &Engine{idx: idx, resolver: resolver}
}

// Lineage returns the one-hop production record for the entity matching
// token: its producing actions (usually zero or one, but multiple
// producers are tolerated), each with tool, partitioned inputs and
// declared outputs. DirectInputs and DirectOutputs are the unions over
// all producers in discovery order.
func (e *Engine) Lineage(token string) (*model.LineageRecord, error) {
	ent, err := e.resolver.Resolve(token)
	if err != nil {
		return nil, err
	}
	return e.record(ent), nil
}

// LineageAll returns one lineage record per entity the token matched,
// in resolution scan order.
func (e *Engine) LineageAll(token string) ([]*model.LineageRecord, error) {
	matches := e.resolver.ResolveAll(token)
	if len(matches) == 0 {
		return nil, &resolve.NotFoundError{Token: token}
	}
	records := make([]*model.LineageRecord, 0, len(matches))
	for _, ent := range matches {
		records = append(records, e.record(ent))
	}
	return records, nil
}

func (e *Engine) record(ent *model.Entity) *model.LineageRecord {
	rec := &model.LineageRecord{
		Target:        model.SummarizeFile(ent),
		DirectInputs:  []model.EntityRef{},
		DirectOutputs: []model.EntityRef{},
		SiteIDs:       []string{},
	}

	producers := e.idx.ProducedBy[ent.ID]
	if len(producers) == 0 {
		rec.Note = "no action lists this entity in its results"
		return rec
	}

	seenIn := make(map[string]bool)
	seenOut := make(map[string]bool)

	for _, actID := range producers {
		act := e.idx.Action(actID)
		if act == nil {
			continue
		}

		producer := model.Producer{
			Action:  model.SummarizeAction(act.Entity),
			Tool:    model.SummarizeTool(e.idx.Tool(act)),
			Inputs:  e.partitionInputs(act),
			Outputs: e.partitionOutputs(act),
		}
		rec.Producers = append(rec.Producers, producer)

		for _, param := range producer.Inputs.Parameters {
			if param.Name == "site_id" {
				if value, ok := param.Value.(string); ok {
					rec.SiteIDs = append(rec.SiteIDs, value)
				}
			}
		}

		for _, in := range act.Inputs {
			if seenIn[in] {
				continue
			}
			seenIn[in] = true
			if ent2 := e.idx.Entity(in); ent2 != nil {
				rec.DirectInputs = append(rec.DirectInputs, model.SummarizeRef(ent2))
			}
		}
		for _, out := range act.Outputs {
			if seenOut[out] {
				continue
			}
			seenOut[out] = true
			if ent2 := e.idx.Entity(out); ent2 != nil {
				rec.DirectOutputs = append(rec.DirectOutputs, model.SummarizeRef(ent2))
			}
		}
	}

	return rec
}

// Ancestry walks the upstream closure of the entity matching token:
// entity -> producing action -> that action's inputs, breadth-first and
// nearest-first. A visited set guards against cycles in the source
// graph; only File and Dataset inputs propagate the walk.
func (e *Engine) Ancestry(token string, config model.TraversalConfig) (*model.TraversalGraph, error) {
	_, graph, queue, visited, err := e.start(token)
	if err != nil {
		return nil, err
	}
	visitedActions := make(map[string]bool)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ent := e.idx.Entity(current.id)
		if ent == nil {
			continue
		}
		graph.Entities = append(graph.Entities, model.SummarizeFile(ent))

		for _, actID := range e.idx.ProducedBy[current.id] {
			graph.Edges = append(graph.Edges, model.Edge{
				Type: model.EdgeGenerated, Action: actID, Entity: current.id,
			})

			if visitedActions[actID] {
				continue
			}
			visitedActions[actID] = true
			graph.Order = append(graph.Order, actID)

			act := e.idx.Action(actID)
			graph.Steps = append(graph.Steps, model.Step{
				ID:     actID,
				Action: model.SummarizeAction(act.Entity),
				Tool:   model.SummarizeTool(e.idx.Tool(act)),
				Inputs: e.partitionInputs(act),
			})

			for _, inID := range act.Inputs {
				in := e.idx.Entity(inID)
				if in == nil || !in.IsArtifact() {
					continue
				}
				graph.Edges = append(graph.Edges, model.Edge{
					Type: model.EdgeUsed, Action: actID, Entity: inID,
				})
				if visited[inID] {
					continue
				}
				if config.MaxDepth > 0 && current.depth+1 > config.MaxDepth {
					continue
				}
				visited[inID] = true
				graph.Order = append(graph.Order, inID)
				queue = append(queue, frontierItem{id: inID, depth: current.depth + 1})
			}
		}
	}

	return graph, nil
}

// Descendants walks the downstream closure of the entity matching token:
// entity -> consuming action -> that action's outputs. Symmetric to
// Ancestry, with the same cycle guard and ordering contract. The result
// additionally lists every non-root File reached.
func (e *Engine) Descendants(token string, config model.TraversalConfig) (*model.TraversalGraph, error) {
	roots, graph, queue, visited, err := e.start(token)
	if err != nil {
		return nil, err
	}
	visitedActions := make(map[string]bool)
	graph.DescendantFiles = []model.FileSummary{}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ent := e.idx.Entity(current.id)
		if ent == nil {
			continue
		}
		summary := model.SummarizeFile(ent)
		graph.Entities = append(graph.Entities, summary)
		if ent.HasType(model.TypeFile) && !roots[current.id] {
			graph.DescendantFiles = append(graph.DescendantFiles, summary)
		}

		for _, actID := range e.idx.ConsumedBy[current.id] {
			graph.Edges = append(graph.Edges, model.Edge{
				Type: model.EdgeUsed, Action: actID, Entity: current.id,
			})

			if visitedActions[actID] {
				continue
			}
			visitedActions[actID] = true
			graph.Order = append(graph.Order, actID)

			act := e.idx.Action(actID)
			graph.Steps = append(graph.Steps, model.Step{
				ID:      actID,
				Action:  model.SummarizeAction(act.Entity),
				Tool:    model.SummarizeTool(e.idx.Tool(act)),
				Inputs:  e.partitionInputs(act),
				Outputs: e.partitionOutputs(act),
			})

			for _, outID := range act.Outputs {
				out := e.idx.Entity(outID)
				if out == nil || !out.IsArtifact() {
					continue
				}
				graph.Edges = append(graph.Edges, model.Edge{
					Type: model.EdgeGenerated, Action: actID, Entity: outID,
				})
				if visited[outID] {
					continue
				}
				if config.MaxDepth > 0 && current.depth+1 > config.MaxDepth {
					continue
				}
				visited[outID] = true
				graph.Order = append(graph.Order, outID)
				queue = append(queue, frontierItem{id: outID, depth: current.depth + 1})
			}
		}
	}

	return graph, nil
}

type frontierItem struct {
	id    string
	depth int
}

// start resolves token, seeds the frontier with every matching root and
// returns the root id set, the empty result graph, the initial queue and
// the visited map.
func (e *Engine) start(token string) (map[string]bool, *model.TraversalGraph, []frontierItem, map[string]bool, error) {
	matches := e.resolver.ResolveAll(token)
	if len(matches) == 0 {
		return nil, nil, nil, nil, &resolve.NotFoundError{Token: token}
	}

	graph := &model.TraversalGraph{
		Roots:    []model.FileSummary{},
		Entities: []model.FileSummary{},
		Steps:    []model.Step{},
		Edges:    []model.Edge{},
		Order:    []string{},
	}

	roots := make(map[string]bool, len(matches))
	visited := make(map[string]bool, len(matches))
	queue := make([]frontierItem, 0, len(matches))

	for _, ent := range matches {
		if roots[ent.ID] {
			continue
		}
		roots[ent.ID] = true
		visited[ent.ID] = true
		graph.Roots = append(graph.Roots, model.SummarizeFile(ent))
		queue = append(queue, frontierItem{id: ent.ID, depth: 0})
	}

	return roots, graph, queue, visited, nil
}

func (e *Engine) partitionInputs(act *model.Action) model.PartitionedInputs {
	parts := model.PartitionedInputs{
		Files:      []model.FileSummary{},
		Datasets:   []model.DatasetSummary{},
		Parameters: []model.ParamSummary{},
		Other:      []model.EntityRef{},
	}
	for _, id := range act.Inputs {
		ent := e.idx.Entity(id)
		if ent == nil {
			// Dangling reference, already recorded at index build time.
			continue
		}
		switch {
		case ent.HasType(model.TypeFile):
			parts.Files = append(parts.Files, model.SummarizeFile(ent))
		case ent.HasType(model.TypeDataset):
			parts.Datasets = append(parts.Datasets, model.SummarizeDataset(ent))
		case ent.HasType(model.TypePropertyValue):
			parts.Parameters = append(parts.Parameters, model.SummarizeParam(ent))
		default:
			parts.Other = append(parts.Other, model.EntityRef{ID: ent.ID, Types: ent.Types})
		}
	}
	return parts
}

func (e *Engine) partitionOutputs(act *model.Action) model.PartitionedOutputs {
	parts := model.PartitionedOutputs{
		Files:    []model.FileSummary{},
		Datasets: []model.DatasetSummary{},
		Other:    []model.EntityRef{},
	}
	for _, id := range act.Outputs {
		ent := e.idx.Entity(id)
		if ent == nil {
			continue
		}
		switch {
		case ent.HasType(model.TypeFile):
			parts.Files = append(parts.Files, model.SummarizeFile(ent))
		case ent.HasType(model.TypeDataset):
			parts.Datasets = append(parts.Datasets, model.SummarizeDataset(ent))
		default:
			parts.Other = append(parts.Other, model.EntityRef{ID: ent.ID, Types: ent.Types})
		}
	}
	return parts
}
