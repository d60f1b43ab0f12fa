package model

import (
	"encoding/json"
	"errors"
)

// Well-known entity type tags from the workflow-run provenance profile.
const (
	TypeFile          = "File"
	TypeDataset       = "Dataset"
	TypeCreateAction  = "CreateAction"
	TypeAction        = "Action"
	TypePropertyValue = "PropertyValue"
	TypeSoftware      = "SoftwareApplication"
)

// Entity represents one node of a crate's @graph: a unique id, its type
// tags and an open property map. There is no rigid class hierarchy here;
// File-like and Action-like behaviour are capability views computed from
// the type tags.
type Entity struct {
	ID         string     `json:"@id"`
	Types      []string   `json:"@type"`
	Properties Properties `json:"properties,omitempty"`
}

// UnmarshalJSON decodes a JSON-LD entity object. @type may be a single
// string or a list of strings; every key other than @id and @type lands
// in Properties unchanged.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, ok := raw["@id"].(string)
	if !ok || id == "" {
		return errors.New("entity is missing an @id")
	}
	e.ID = id

	e.Types = nil
	switch t := raw["@type"].(type) {
	case string:
		e.Types = []string{t}
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok {
				e.Types = append(e.Types, s)
			}
		}
	}

	delete(raw, "@id")
	delete(raw, "@type")
	e.Properties = Properties(raw)

	return nil
}

// MarshalJSON re-emits the entity in its source JSON-LD shape.
func (e *Entity) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(e.Properties)+2)
	for k, v := range e.Properties {
		raw[k] = v
	}
	raw["@id"] = e.ID
	switch len(e.Types) {
	case 0:
	case 1:
		raw["@type"] = e.Types[0]
	default:
		raw["@type"] = e.Types
	}
	return json.Marshal(raw)
}

// HasType reports whether the entity carries the given type tag.
func (e *Entity) HasType(name string) bool {
	for _, t := range e.Types {
		if t == name {
			return true
		}
	}
	return false
}

// IsActionLike reports whether the entity represents a processing step.
func (e *Entity) IsActionLike() bool {
	for _, t := range e.Types {
		switch t {
		case TypeCreateAction, TypeAction, "UpdateAction", "ActivateAction":
			return true
		}
	}
	return false
}

// IsArtifact reports whether the entity is a data artifact that lineage
// traversals propagate through (a File or Dataset).
func (e *Entity) IsArtifact() bool {
	return e.HasType(TypeFile) || e.HasType(TypeDataset)
}

// Label returns the display name of the entity: alternateName when
// present (the profile uses it for file paths), falling back to name.
func (e *Entity) Label() string {
	if alt := e.Properties.String("alternateName"); alt != "" {
		return alt
	}
	return e.Properties.String("name")
}

// ContentURL returns the declared content locator, or "".
func (e *Entity) ContentURL() string {
	if s := e.Properties.String("contentUrl"); s != "" {
		return s
	}
	// Some producers emit contentUrl as a reference object.
	return e.Properties.Ref("contentUrl")
}

// EncodingFormat returns the declared media type, preferring
// encodingFormat over the legacy fileFormat key.
func (e *Entity) EncodingFormat() string {
	if s := e.Properties.String("encodingFormat"); s != "" {
		return s
	}
	return e.Properties.String("fileFormat")
}

// SHA1 returns the recorded content digest, or "".
func (e *Entity) SHA1() string {
	return e.Properties.String("sha1")
}

// Instrument returns the id of the tool the entity declares as its
// instrument, or "".
func (e *Entity) Instrument() string {
	return e.Properties.Ref("instrument")
}
