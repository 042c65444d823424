package model

// DroppedLine records a line removed from a source file.
type DroppedLine struct {
	Number int    `yaml:"number"` // 1-based line number in the original file
	Rule   string `yaml:"rule"`
	Text   string `yaml:"text"`
}

// CleanReport is the result of cleaning a single source file.
type CleanReport struct {
	Path       Path          `yaml:"path"`
	HashBefore string        `yaml:"hash_before"`
	HashAfter  string        `yaml:"hash_after"`
	LinesIn    int           `yaml:"lines_in"`
	LinesOut   int           `yaml:"lines_out"`
	Dropped    []DroppedLine `yaml:"dropped,omitempty"`
	Written    bool          `yaml:"written"`
	DryRun     bool          `yaml:"dry_run"`
}

// Changed reports whether cleaning removed at least one line.
func (r CleanReport) Changed() bool {
	return len(r.Dropped) > 0
}

// DroppedByRule counts dropped lines per rule name.
func (r CleanReport) DroppedByRule() map[string]int {
	counts := make(map[string]int)
	for _, d := range r.Dropped {
		counts[d.Rule]++
	}

	return counts
}
