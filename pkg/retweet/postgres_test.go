package retweet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows serves fixed rows; nil entries model SQL NULL
type fakeRows struct {
	columns []string
	rows    [][]any
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case **int64:
			if v == nil {
				*d = nil
			} else {
				id := v.(int64)
				*d = &id
			}
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		default:
			return fmt.Errorf("unsupported destination %T", dest[i])
		}
	}
	return nil
}

type fakeQuerier struct {
	rows  *fakeRows
	err   error
	query string
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.query = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_WithNames(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"retweeter_id", "author_id", "retweeter_name", "author_name"},
		rows: [][]any{
			{int64(4), int64(2), "diane", "bob"},
			{int64(3), int64(1), nil, "alice"},
			{nil, int64(1), "ghost", "alice"},
		},
	}
	q := &fakeQuerier{rows: rows}
	src := NewPostgresSourceWithQuerier(q, "SELECT * FROM retweets")

	batch, err := src.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, src.Close())

	assert.Equal(t, "SELECT * FROM retweets", q.query)
	assert.True(t, rows.closed)
	assert.Equal(t, "postgres", src.Name())
	assert.Equal(t, 3, batch.Read)
	assert.Equal(t, 1, batch.Skipped)
	require.Len(t, batch.Records, 2)
	assert.Equal(t, Record{RetweeterID: 4, AuthorID: 2, RetweeterName: "diane", AuthorName: "bob"}, batch.Records[0])
	assert.Equal(t, Record{RetweeterID: 3, AuthorID: 1, AuthorName: "alice"}, batch.Records[1])
}

func TestPostgresSource_IDsOnly(t *testing.T) {
	rows := &fakeRows{
		columns: []string{"retweeter_id", "author_id"},
		rows:    [][]any{{int64(1), int64(2)}, {int64(1), int64(2)}},
	}
	src := NewPostgresSourceWithQuerier(&fakeQuerier{rows: rows}, "SELECT a, b FROM rt")

	batch, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch.Pairs(), 2)
	assert.Empty(t, batch.Names())
}

func TestPostgresSource_Errors(t *testing.T) {
	src := NewPostgresSourceWithQuerier(&fakeQuerier{err: errors.New("relation does not exist")}, "q")
	_, err := src.Load(context.Background())
	assert.ErrorContains(t, err, "relation does not exist")

	rows := &fakeRows{columns: []string{"a", "b"}, err: errors.New("connection reset")}
	src = NewPostgresSourceWithQuerier(&fakeQuerier{rows: rows}, "q")
	_, err = src.Load(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostgresSource_ColumnCount(t *testing.T) {
	for _, columns := range [][]string{
		{"retweeter_id"},
		{"retweeter_id", "author_id", "retweeter_name"},
		{"retweeter_id", "author_id", "retweeter_name", "author_name", "created_at"},
	} {
		rows := &fakeRows{columns: columns, rows: [][]any{{int64(1)}}}
		src := NewPostgresSourceWithQuerier(&fakeQuerier{rows: rows}, "q")

		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, ErrMalformed, "%d columns", len(columns))
		assert.ErrorContains(t, err, fmt.Sprintf("returned %d columns", len(columns)))
		assert.True(t, rows.closed)
	}
}
