package model

// Action is a capability view over an Action-like entity. Input and
// output references are normalized to plain id lists once, at index build
// time, so queries never have to care whether the source graph used
// object/input or result/output, single references or lists.
type Action struct {
	Entity  *Entity  `json:"entity"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// NewAction builds the normalized view for an Action-like entity.
func NewAction(e *Entity) *Action {
	inputs := e.Properties.Refs("object")
	inputs = append(inputs, e.Properties.Refs("input")...)

	outputs := e.Properties.Refs("result")
	outputs = append(outputs, e.Properties.Refs("output")...)

	return &Action{
		Entity:  e,
		Inputs:  inputs,
		Outputs: outputs,
	}
}

// ID returns the id of the underlying entity.
func (a *Action) ID() string {
	return a.Entity.ID
}
