package model

import (
	"encoding/json"
	"errors"
)

// Properties represents the open property map of a graph entity.
// Values are whatever the metadata document carried: scalars, strings,
// reference objects ({"@id": ...}) or lists of any of those.
type Properties map[string]interface{}

// Marshal converts Properties to JSON bytes
func (p Properties) Marshal() ([]byte, error) {
	return json.Marshal(map[string]interface{}(p))
}

// Unmarshal converts JSON bytes or Properties to Properties
func (p *Properties) Unmarshal(value interface{}) error {
	if value == nil {
		*p = Properties{}
		return nil
	}

	if s, ok := value.(Properties); ok {
		*p = s
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, p)
}

// String returns the value for key if it is a plain string, else "".
func (p Properties) String(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Ref returns a single referenced entity id for key. It accepts either a
// bare string or a reference object and returns "" if neither is present.
func (p Properties) Ref(key string) string {
	refs := p.Refs(key)
	if len(refs) == 0 {
		return ""
	}
	return refs[0]
}

// Refs normalizes the value for key into a list of referenced entity ids.
// Accepted shapes: a bare id string, a {"@id": ...} object, or a list of
// either. A missing or unusable value yields an empty list.
func (p Properties) Refs(key string) []string {
	value, ok := p[key]
	if !ok {
		return nil
	}
	return refIDs(value)
}

func refIDs(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case map[string]interface{}:
		if id, ok := v["@id"].(string); ok && id != "" {
			return []string{id}
		}
		return nil
	case []interface{}:
		var ids []string
		for _, item := range v {
			ids = append(ids, refIDs(item)...)
		}
		return ids
	default:
		return nil
	}
}
