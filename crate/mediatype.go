package crate

import (
	_ "embed"
	"log"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

//go:embed mediatypes.yaml
var mediatypesYAML []byte

// DefaultMediaType is returned when neither the entity nor the
// extension table identifies a media type.
const DefaultMediaType = "application/octet-stream"

var extensionTypes = mustLoadExtensionTable()

func mustLoadExtensionTable() map[string]string {
	table := map[string]string{}
	if err := yaml.Unmarshal(mediatypesYAML, &table); err != nil {
		log.Panicf("error parsing embedded media type table: %#v", err)
	}
	return table
}

// DetectMediaType guesses the media type of a File entity: the declared
// encodingFormat wins, then the display-name extension table, then the
// octet-stream default. It never fails.
func DetectMediaType(ent *model.Entity) string {
	if format := ent.EncodingFormat(); format != "" {
		return format
	}

	name := strings.ToLower(ent.Label())
	if name == "" {
		name = strings.ToLower(ent.ID)
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if mediaType, ok := extensionTypes[ext]; ok {
		return mediaType
	}

	return DefaultMediaType
}

// IsCSV reports whether mediaType denotes comma-separated values.
func IsCSV(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "text/csv", "text/comma-separated-values":
		return true
	}
	return false
}

// IsImage reports whether mediaType is any image type.
func IsImage(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "image/")
}

// IsJSON reports whether mediaType is a JSON flavor.
func IsJSON(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "application/json", "application/ld+json", "application/geo+json":
		return true
	}
	return false
}
