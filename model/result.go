package model

// Edge kinds recorded during closure traversals.
const (
	EdgeUsed      = "used"
	EdgeGenerated = "generated"
)

// Edge represents one recorded relationship between an action and an
// entity in a traversal result.
type Edge struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Entity string `json:"entity"`
}

// PartitionedInputs groups an action's resolved inputs by role.
type PartitionedInputs struct {
	Files      []FileSummary    `json:"files"`
	Datasets   []DatasetSummary `json:"datasets"`
	Parameters []ParamSummary   `json:"parameters"`
	Other      []EntityRef      `json:"other"`
}

// PartitionedOutputs groups an action's resolved outputs by role.
type PartitionedOutputs struct {
	Files    []FileSummary    `json:"files"`
	Datasets []DatasetSummary `json:"datasets"`
	Other    []EntityRef      `json:"other"`
}

// Producer is one action that declares the lineage target among its
// results, together with its tool and full input/output record.
type Producer struct {
	Action  ActionSummary      `json:"action"`
	Tool    *ToolSummary       `json:"tool,omitempty"`
	Inputs  PartitionedInputs  `json:"inputs"`
	Outputs PartitionedOutputs `json:"outputs"`
}

// LineageRecord is the one-hop production record for a single artifact.
// DirectInputs and DirectOutputs are the unions over all producers, in
// discovery order.
type LineageRecord struct {
	Target        FileSummary `json:"target"`
	Producers     []Producer  `json:"producers"`
	DirectInputs  []EntityRef `json:"direct_inputs"`
	DirectOutputs []EntityRef `json:"direct_outputs"`
	SiteIDs       []string    `json:"site_ids"`
	Note          string      `json:"note,omitempty"`
}

// Step is one action discovered during a closure traversal.
type Step struct {
	ID      string             `json:"id"`
	Action  ActionSummary      `json:"action"`
	Tool    *ToolSummary       `json:"tool,omitempty"`
	Inputs  PartitionedInputs  `json:"inputs"`
	Outputs PartitionedOutputs `json:"outputs"`
}

// TraversalGraph is the result of an ancestry or descendants closure.
// Steps are nearest-first; Entities holds every File/Dataset visited in
// discovery order, roots included. Order lists action and artifact ids
// in the order they were first discovered, roots excluded, and is the
// flat nearest-first view of the closure. DescendantFiles is populated
// by downstream walks only.
type TraversalGraph struct {
	Roots           []FileSummary `json:"root_files"`
	Entities        []FileSummary `json:"entities"`
	Steps           []Step        `json:"actions"`
	Edges           []Edge        `json:"edges"`
	Order           []string      `json:"order"`
	DescendantFiles []FileSummary `json:"descendant_files,omitempty"`
}

// StepRun is a site-scoped action with the site ids it was tagged with.
type StepRun struct {
	Action  ActionSummary `json:"action"`
	Tool    *ToolSummary  `json:"tool,omitempty"`
	SiteIDs []string      `json:"site_ids"`
}

// SiteBundle groups every entity belonging to one processing site into
// role-tagged buckets. An empty bundle is a valid answer; missing sites
// are not an error.
type SiteBundle struct {
	SiteID      string           `json:"site_id"`
	Files       []FileSummary    `json:"files"`
	Directories []DatasetSummary `json:"directories"`
	Actions     []StepRun        `json:"actions"`
	Parameters  []ParamSummary   `json:"parameters"`
}

// Empty reports whether the bundle matched nothing at all.
func (b *SiteBundle) Empty() bool {
	return len(b.Files) == 0 && len(b.Directories) == 0 &&
		len(b.Actions) == 0 && len(b.Parameters) == 0
}
