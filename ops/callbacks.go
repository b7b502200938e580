package ops

// Progress reports how far a choreographer has gotten. Phase names a stage
// of the sequence (not every choreographer uses every phase); Detail is a
// free-form note, e.g. a poll target or a BDT frame number.
type Progress struct {
	Operation string
	Phase     string
	Detail    string
}

// ProgressCallback is invoked at each phase transition. Implementations
// should return quickly.
type ProgressCallback func(Progress)

func (c *Client) reportProgress(p Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}
