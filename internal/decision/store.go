package decision

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// Store persists decisions to SQLite. The core gives no durability guarantee;
// the orchestrator hands completed decisions off here after recording.
type Store struct {
	conn *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id          TEXT PRIMARY KEY,
	request_id  TEXT NOT NULL,
	status      TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL,
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_decisions_request_id ON decisions(request_id);
`

// OpenStore opens (or creates) the decision store at path. WAL mode and a
// busy timeout keep concurrent readers from tripping over the writer.
func OpenStore(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, types.WrapError(types.STORE_OPEN_FAILED, "opening decision store", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, types.WrapError(types.STORE_OPEN_FAILED, "pinging decision store", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, types.WrapError(types.STORE_OPEN_FAILED, "creating decisions table", err)
	}

	return &Store{conn: conn, path: path}, nil
}

// Save writes one decision. The full record is stored as JSON alongside the
// indexed columns.
func (s *Store) Save(ctx context.Context, d Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "encoding decision", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO decisions (id, request_id, status, recorded_at, payload) VALUES (?, ?, ?, ?, ?)`,
		d.ID.String(), d.RequestID, string(d.Status), d.Timestamp, string(payload),
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "inserting decision", err)
	}
	return nil
}

// ListByRequest returns every stored decision for a request, oldest first.
func (s *Store) ListByRequest(ctx context.Context, requestID string) ([]Decision, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT payload FROM decisions WHERE request_id = ? ORDER BY recorded_at ASC`,
		requestID,
	)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "querying decisions", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "scanning decision row", err)
		}
		var d Decision
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "decoding decision payload", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "iterating decision rows", err)
	}
	return out, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
