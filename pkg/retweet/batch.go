package retweet

import (
	"github.com/dd0wney/cluso-hits/pkg/graph"
)

// Batch is the finite set of records loaded from one source
type Batch struct {
	Source  string
	Records []Record
	Read    int   // Lines or rows seen, excluding blank lines
	Skipped int   // Lines or rows that did not yield a record
	Bytes   int64 // Uncompressed line bytes consumed, 0 for row sources
}

// Add appends a record
func (b *Batch) Add(r Record) {
	b.Records = append(b.Records, r)
	b.Read++
}

// Skip counts a line or row that produced no record
func (b *Batch) Skip() {
	b.Read++
	b.Skipped++
}

// Pairs returns the retweeter -> author pairs in input order
func (b *Batch) Pairs() []graph.Edge[int64] {
	pairs := make([]graph.Edge[int64], len(b.Records))
	for i, r := range b.Records {
		pairs[i] = r.Edge()
	}
	return pairs
}

// Names maps user ids to the last non-empty screen name seen for them
func (b *Batch) Names() map[int64]string {
	names := make(map[int64]string)
	for _, r := range b.Records {
		if r.RetweeterName != "" {
			names[r.RetweeterID] = r.RetweeterName
		}
		if r.AuthorName != "" {
			names[r.AuthorID] = r.AuthorName
		}
	}
	return names
}
