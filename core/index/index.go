// Package index builds the derived lookup structures over a crate's
// entity list: by-id, by-type and the producer/consumer edge maps that
// all lineage queries run against. An Index is a pure function of the
// entity list and is never mutated after Build returns.
package index

import (
	"fmt"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// DuplicateIDError reports two entities sharing an @id. Loading a crate
// with a duplicate id fails entirely; no partially built index escapes.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate entity id %q", e.ID)
}

// DanglingRef records an action input or output that references an id
// not present in the entity list. Dangling references are tolerated and
// inspectable, but never block queries.
type DanglingRef struct {
	ActionID string `json:"action"`
	TargetID string `json:"target"`
	Role     string `json:"role"` // "input" or "output"
}

// Index holds the lookup structures for one loaded crate. All ordered
// state lives in slices so that rebuilding from the same entity list
// yields identical results regardless of map iteration order.
type Index struct {
	// IDs lists every entity id in source order.
	IDs []string
	// ByID maps entity id to entity.
	ByID map[string]*model.Entity
	// ByType maps a type tag to entity ids in source order.
	ByType map[string][]string
	// Actions lists the normalized Action views in source order.
	Actions []*model.Action
	// ActionByID maps an action id to its normalized view.
	ActionByID map[string]*model.Action
	// ProducedBy maps an output entity id to the ids of the actions
	// that declare it as a result. More than one producer is tolerated.
	ProducedBy map[string][]string
	// ConsumedBy maps an input entity id to the ids of the actions
	// that declare it as an input.
	ConsumedBy map[string][]string
	// Dangling lists action references to unknown entity ids.
	Dangling []DanglingRef
}

// Build constructs the index in a single pass over the entity list. It
// fails fast with a DuplicateIDError when two entities share an id.
func Build(graph []*model.Entity) (*Index, error) {
	idx := &Index{
		IDs:        make([]string, 0, len(graph)),
		ByID:       make(map[string]*model.Entity, len(graph)),
		ByType:     make(map[string][]string),
		ActionByID: make(map[string]*model.Action),
		ProducedBy: make(map[string][]string),
		ConsumedBy: make(map[string][]string),
	}

	for _, ent := range graph {
		if _, exists := idx.ByID[ent.ID]; exists {
			return nil, &DuplicateIDError{ID: ent.ID}
		}
		idx.IDs = append(idx.IDs, ent.ID)
		idx.ByID[ent.ID] = ent

		for _, t := range ent.Types {
			idx.ByType[t] = append(idx.ByType[t], ent.ID)
		}

		if ent.IsActionLike() {
			act := model.NewAction(ent)
			idx.Actions = append(idx.Actions, act)
			idx.ActionByID[ent.ID] = act
		}
	}

	// Edge maps are filled after ByID is complete so that dangling
	// references can be told apart from forward references.
	for _, act := range idx.Actions {
		for _, in := range act.Inputs {
			idx.ConsumedBy[in] = append(idx.ConsumedBy[in], act.ID())
			if _, ok := idx.ByID[in]; !ok {
				idx.Dangling = append(idx.Dangling, DanglingRef{
					ActionID: act.ID(), TargetID: in, Role: "input",
				})
			}
		}
		for _, out := range act.Outputs {
			idx.ProducedBy[out] = append(idx.ProducedBy[out], act.ID())
			if _, ok := idx.ByID[out]; !ok {
				idx.Dangling = append(idx.Dangling, DanglingRef{
					ActionID: act.ID(), TargetID: out, Role: "output",
				})
			}
		}
	}

	return idx, nil
}

// Entity returns the entity for id, or nil.
func (idx *Index) Entity(id string) *model.Entity {
	return idx.ByID[id]
}

// Action returns the normalized action view for id, or nil.
func (idx *Index) Action(id string) *model.Action {
	return idx.ActionByID[id]
}

// Tool resolves an action's instrument reference, or nil.
func (idx *Index) Tool(act *model.Action) *model.Entity {
	instID := act.Entity.Instrument()
	if instID == "" {
		return nil
	}
	return idx.ByID[instID]
}
