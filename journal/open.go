package journal

import (
	"fmt"
	"strings"
)

// Open returns the trade log backend named by typ ("csv" or "sqlite") at
// path and initializes it.
func Open(typ, path string) (TradeLog, error) {
	var (
		tl  TradeLog
		err error
	)
	switch strings.ToLower(typ) {
	case "", "csv":
		tl = NewCSV(path)
	case "sqlite":
		tl, err = NewSQLite(path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJournalType, typ)
	}

	if err := tl.Init(); err != nil {
		tl.Close()
		return nil, fmt.Errorf("init %s trade log: %w", typ, err)
	}
	return tl, nil
}
