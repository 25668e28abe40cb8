package domain

import "time"

// ImageEntry is built per scan and never cached.
type ImageEntry struct {
	Name    string
	Path    string
	ModTime time.Time
}

type MoveResult struct {
	Source   string
	Decision Decision
	// RelativePath is slash separated and starts with the decision directory, e.g. "SI/a_1.png".
	RelativePath string
	Collisions   int
	CrossDevice  bool
}
