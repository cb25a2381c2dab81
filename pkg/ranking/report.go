package ranking

import (
	"time"
)

// Entry is one ranked user
type Entry struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

// Report is the outcome of a single ranking run
type Report struct {
	RunID          string        `json:"run_id"`
	Source         string        `json:"source"`
	Engine         string        `json:"engine"`
	Nodes          int           `json:"nodes"`
	Edges          int           `json:"edges"`
	SelfLoops      int           `json:"self_loops"`
	RecordsRead    int           `json:"records_read"`
	RecordsSkipped int           `json:"records_skipped"`
	Iterations     int           `json:"iterations"`
	Converged      bool          `json:"converged"`
	Duration       time.Duration `json:"duration_ns"`
	Hubs           []Entry       `json:"hubs"`
	Authorities    []Entry       `json:"authorities"`
}
