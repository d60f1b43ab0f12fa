// Package resolve maps user-supplied tokens (entity ids, file names or
// path fragments) to entities of a loaded crate.
package resolve

import (
	"fmt"
	"strings"

	"github.com/GusEllerm/ro-crate-provenance-tools/core/index"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

// NotFoundError reports a token that no resolution rule matched.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no entity matches %q", e.Token)
}

// Resolver resolves tokens against an immutable index. Resolution is
// deterministic: the same token against the same index always returns
// the same entity.
type Resolver struct {
	idx *index.Index
}

// NewResolver creates a new resolver over idx.
func NewResolver(idx *index.Index) *Resolver {
	return &Resolver{idx: idx}
}

// Resolve maps token to exactly one entity. Resolution order, first
// match wins:
//  1. exact id match, any entity type
//  2. exact display-name match over File entities, in source order
//  3. substring match of token against a File entity's id or display
//     name, in source order
//
// When several File entities satisfy rule 3 the first in scan order is
// returned; use ResolveAll to see every candidate.
func (r *Resolver) Resolve(token string) (*model.Entity, error) {
	matches := r.ResolveAll(token)
	if len(matches) == 0 {
		return nil, &NotFoundError{Token: token}
	}
	return matches[0], nil
}

// ResolveAll returns every entity matched by the winning resolution
// rule, in deterministic scan order. The result is empty when no rule
// matches.
func (r *Resolver) ResolveAll(token string) []*model.Entity {
	// Rule 1: exact id.
	if ent := r.idx.Entity(token); ent != nil {
		return []*model.Entity{ent}
	}

	files := r.idx.ByType[model.TypeFile]

	// Rule 2: exact display name.
	var exact []*model.Entity
	for _, id := range files {
		ent := r.idx.Entity(id)
		if ent.Label() == token {
			exact = append(exact, ent)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	// Rule 3: substring over id and display name.
	var partial []*model.Entity
	for _, id := range files {
		ent := r.idx.Entity(id)
		if strings.Contains(ent.ID, token) || strings.Contains(ent.Label(), token) {
			partial = append(partial, ent)
		}
	}
	return partial
}
