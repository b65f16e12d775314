package reconcile

// Counts tallies the writes of one entity type.
type Counts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	// Statements is the number of write statements issued.
	Statements int `json:"statements"`
}

// Writes is the number of rows written.
func (c Counts) Writes() int {
	return c.Inserted + c.Updated + c.Deleted
}

// Stats describes what one reconciliation wrote.
type Stats struct {
	Directories Counts `json:"directories"`
	Media       Counts `json:"media"`
	MetaFiles   Counts `json:"metaFiles"`
	Faces       Counts `json:"faces"`
	// Adopted counts orphaned directories re-parented under the reconciled one.
	Adopted int `json:"adopted"`
}

// Each calls fn for every non-zero (entity, operation) row count.
func (s *Stats) Each(fn func(entity, operation string, rows int)) {
	emit := func(entity string, c Counts) {
		for _, op := range []struct {
			name string
			n    int
		}{{"insert", c.Inserted}, {"update", c.Updated}, {"delete", c.Deleted}} {
			if op.n > 0 {
				fn(entity, op.name, op.n)
			}
		}
	}
	emit("directory", s.Directories)
	emit("media", s.Media)
	emit("file", s.MetaFiles)
	emit("face", s.Faces)
	if s.Adopted > 0 {
		fn("directory", "adopt", s.Adopted)
	}
}
