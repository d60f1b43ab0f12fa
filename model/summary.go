package model

// FileSummary is the compact, serialization-ready view of a File entity.
// It is also used for the target of a lineage query, which may be any
// data artifact; digest and format stay empty for non-files.
type FileSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	SHA1           string `json:"sha1,omitempty"`
	EncodingFormat string `json:"encodingFormat,omitempty"`
	ExampleOfWork  string `json:"exampleOfWork,omitempty"`
}

// DatasetSummary is the compact view of a Dataset entity.
type DatasetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ParamSummary is the compact view of a PropertyValue parameter.
type ParamSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name,omitempty"`
	Value         interface{} `json:"value,omitempty"`
	ExampleOfWork string      `json:"exampleOfWork,omitempty"`
}

// ActionSummary is the compact view of a processing step.
type ActionSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// ToolSummary is the compact view of a SoftwareApplication instrument.
type ToolSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Types   []string `json:"type,omitempty"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty"`
}

// EntityRef is the minimal reference emitted for entities that have no
// richer summary shape.
type EntityRef struct {
	ID    string   `json:"id"`
	Types []string `json:"type,omitempty"`
	Name  string   `json:"name,omitempty"`
}

// SummarizeFile returns the compact summary for a File entity.
func SummarizeFile(e *Entity) FileSummary {
	return FileSummary{
		ID:             e.ID,
		Name:           e.Label(),
		SHA1:           e.SHA1(),
		EncodingFormat: e.EncodingFormat(),
		ExampleOfWork:  e.Properties.Ref("exampleOfWork"),
	}
}

// SummarizeDataset returns the compact summary for a Dataset entity.
func SummarizeDataset(e *Entity) DatasetSummary {
	return DatasetSummary{
		ID:   e.ID,
		Name: e.Label(),
	}
}

// SummarizeParam returns the compact summary for a PropertyValue.
func SummarizeParam(e *Entity) ParamSummary {
	return ParamSummary{
		ID:            e.ID,
		Name:          e.Properties.String("name"),
		Value:         e.Properties["value"],
		ExampleOfWork: e.Properties.Ref("exampleOfWork"),
	}
}

// SummarizeAction returns the compact summary for a processing step.
func SummarizeAction(e *Entity) ActionSummary {
	return ActionSummary{
		ID:        e.ID,
		Name:      e.Properties.String("name"),
		StartTime: e.Properties.String("startTime"),
		EndTime:   e.Properties.String("endTime"),
	}
}

// SummarizeTool returns the compact summary for an instrument entity,
// or nil when there is none.
func SummarizeTool(e *Entity) *ToolSummary {
	if e == nil {
		return nil
	}
	return &ToolSummary{
		ID:      e.ID,
		Name:    e.Properties.String("name"),
		Types:   e.Types,
		Inputs:  e.Properties.Refs("input"),
		Outputs: e.Properties.Refs("output"),
	}
}

// SummarizeRef returns the minimal reference for any entity.
func SummarizeRef(e *Entity) EntityRef {
	return EntityRef{
		ID:    e.ID,
		Types: e.Types,
		Name:  e.Label(),
	}
}
