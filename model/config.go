package model

// TraversalConfig represents configuration for a closure traversal
type TraversalConfig struct {
	// MaxDepth bounds how many action hops a traversal may take from the
	// root entity. Zero means unbounded; the visited-set guard still
	// terminates cyclic graphs.
	MaxDepth int `json:"max_depth,omitempty"`
}

// DefaultTraversalConfig returns a sensible default configuration
func DefaultTraversalConfig() TraversalConfig {
	return TraversalConfig{
		MaxDepth: 0,
	}
}
