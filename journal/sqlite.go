package journal

import (
	"database/sql"
	"fmt"

	"github.com/Dayto852/okx-pro-bot/internal/logger"
	"github.com/Dayto852/okx-pro-bot/pkg/id"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the trade log in a SQLite table. Rows are keyed by ULID
// and read back in rowid order, which is insertion order.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Append(rec TradeRecord) error {
	if err := s.Init(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO trades (id, time, symbol, side, entry, exit, qty, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), rec.Time, rec.Symbol, rec.Side,
		nullFloat(rec.Entry), nullFloat(rec.Exit), nullFloat(rec.Qty), nullFloat(rec.PnL),
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendFields(fields map[string]any) error {
	rec, dropped := RecordFromFields(fields)
	if len(dropped) > 0 {
		logger.L().Debug().Strs("fields", dropped).Msg("non-numeric values left empty")
	}
	return s.Append(rec)
}

// ReadAll returns every row in insertion order, or the fallback table if the
// query fails.
func (s *SQLiteStore) ReadAll() Table {
	t, err := s.readAll()
	if err != nil {
		logger.L().Warn().Err(err).Str("path", s.path).Msg("trade log unreadable, using empty table")
		return fallbackTable()
	}
	return t
}

func (s *SQLiteStore) readAll() (Table, error) {
	rows, err := s.db.Query(`
		SELECT time, symbol, side, entry, exit, qty, pnl
		FROM trades
		ORDER BY rowid ASC`)
	if err != nil {
		return Table{}, err
	}
	defer rows.Close()

	t := EmptyTable()
	for rows.Next() {
		var (
			rec                   TradeRecord
			entry, exit, qty, pnl sql.NullFloat64
		)
		if err := rows.Scan(&rec.Time, &rec.Symbol, &rec.Side, &entry, &exit, &qty, &pnl); err != nil {
			return Table{}, err
		}
		rec.Entry = fromNull(entry)
		rec.Exit = fromNull(exit)
		rec.Qty = fromNull(qty)
		rec.PnL = fromNull(pnl)
		t.Records = append(t.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return Float(n.Float64)
}
