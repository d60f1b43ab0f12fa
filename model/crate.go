package model

// Crate is the top-level aggregate: the full entity list in source order
// plus the designated root entity. A Crate is constructed once by the
// loader and never mutated afterwards, which is what makes concurrent
// queries against it safe without locking.
type Crate struct {
	Graph   []*Entity `json:"graph"`
	Root    *Entity   `json:"root"`
	RootDir string    `json:"root_dir,omitempty"`
}
