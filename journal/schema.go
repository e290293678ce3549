// journal/schema.go
package journal

// Schema creates the trade log table. Numeric columns are nullable so an
// absent field round-trips as NULL rather than zero. The table keeps its
// implicit rowid; reads order by it.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	time TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	side TEXT NOT NULL DEFAULT '',
	entry REAL,
	exit REAL,
	qty REAL,
	pnl REAL
);
`
