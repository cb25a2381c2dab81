package retweet

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/dd0wney/cluso-hits/pkg/graph"
	"github.com/tidwall/gjson"
)

var (
	ErrEmptyLine  = errors.New("empty line")
	ErrMalformed  = errors.New("malformed record")
	ErrNotRetweet = errors.New("not a retweet")
)

// Record is one retweet: RetweeterID retweeted a tweet written by AuthorID
type Record struct {
	RetweeterID   int64  `json:"retweeter_id"`
	AuthorID      int64  `json:"author_id"`
	RetweeterName string `json:"retweeter_name,omitempty"`
	AuthorName    string `json:"author_name,omitempty"`
}

// Edge returns the retweeter -> author pair
func (r Record) Edge() graph.Edge[int64] {
	return graph.Edge[int64]{From: r.RetweeterID, To: r.AuthorID}
}

var linePaths = []string{
	"user.id",
	"user.id_str",
	"user.screen_name",
	"retweeted_status",
	"retweeted_status.user.id",
	"retweeted_status.user.id_str",
	"retweeted_status.user.screen_name",
}

// ParseLine extracts a Record from one tweet JSON object. The retweeter is
// the tweet's user and the author is the user of retweeted_status.
func ParseLine(line []byte) (Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Record{}, ErrEmptyLine
	}
	if !gjson.ValidBytes(line) {
		return Record{}, ErrMalformed
	}

	res := gjson.GetManyBytes(line, linePaths...)
	if !res[3].IsObject() {
		return Record{}, ErrNotRetweet
	}

	retweeter, ok := userID(res[0], res[1])
	if !ok {
		return Record{}, ErrMalformed
	}
	author, ok := userID(res[4], res[5])
	if !ok {
		return Record{}, ErrMalformed
	}

	return Record{
		RetweeterID:   retweeter,
		AuthorID:      author,
		RetweeterName: res[2].String(),
		AuthorName:    res[6].String(),
	}, nil
}

// userID prefers id_str, which survives JSON consumers that round ids
// through float64
func userID(num, str gjson.Result) (int64, bool) {
	if str.Type == gjson.String {
		if id, err := strconv.ParseInt(str.Str, 10, 64); err == nil {
			return id, true
		}
	}
	if num.Type == gjson.Number {
		if id, err := strconv.ParseInt(num.Raw, 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}
