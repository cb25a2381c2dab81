package retweet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
)

// snappySuffixes mark inputs written with the snappy framing format
var snappySuffixes = []string{".sz", ".snappy"}

// IsSnappy reports whether name carries a snappy suffix
func IsSnappy(name string) bool {
	for _, s := range snappySuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// Decompress wraps r in a snappy reader when name says it is compressed
func Decompress(name string, r io.Reader) io.Reader {
	if IsSnappy(name) {
		return snappy.NewReader(r)
	}
	return r
}

// countingReader tracks bytes pulled from the underlying reader
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Decode reads line-delimited tweet JSON from r. Lines that do not parse
// into a Record are skipped and counted. Lines of any length are accepted.
// Cancellation of ctx is checked between lines.
func Decode(ctx context.Context, source string, r io.Reader) (*Batch, error) {
	cr := &countingReader{r: r}
	br := bufio.NewReaderSize(cr, 64*1024)
	batch := &Batch{Source: source}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 {
			rec, err := ParseLine(line)
			switch {
			case err == nil:
				batch.Add(rec)
			case errors.Is(err, ErrEmptyLine):
			default:
				batch.Skip()
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read %s: %w", source, readErr)
		}
	}

	batch.Bytes = cr.n
	return batch, nil
}
