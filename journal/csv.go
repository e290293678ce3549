// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Dayto852/okx-pro-bot/internal/logger"
)

// CSVStore keeps the trade log in a comma separated file with a header row.
// Every call goes to the file; nothing is cached between calls.
//
// A CSVStore assumes a single writer process.
type CSVStore struct {
	path string
}

func NewCSV(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Init creates the file with only the header row if it does not exist.
// A zero-length file gets the header too. A file with content is never touched.
func (s *CSVStore) Init() error {
	if fi, err := os.Stat(s.path); err == nil {
		if fi.Size() > 0 {
			return nil
		}
		return s.writeHeader(os.O_WRONLY | os.O_APPEND)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat trade log: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create trade log dir: %w", err)
		}
	}

	err := s.writeHeader(os.O_WRONLY | os.O_CREATE | os.O_EXCL)
	if errors.Is(err, os.ErrExist) {
		// someone else created it first; the header is the same either way
		return nil
	}
	return err
}

func (s *CSVStore) writeHeader(flag int) error {
	f, err := os.OpenFile(s.path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("create trade log: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close trade log: %w", err)
	}

	logger.L().Info().Str("path", s.path).Msg("trade log created")
	return nil
}

// Append writes one row at the end of the file. The row is flushed and the
// file closed before Append returns. A last line without a newline (a hand
// edit, say) is terminated first so the new row never joins it.
func (s *CSVStore) Append(rec TradeRecord) error {
	if err := s.Init(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open trade log: %w", err)
	}
	if err := terminateLastLine(f); err != nil {
		f.Close()
		return fmt.Errorf("append trade: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rec.Row()); err != nil {
		f.Close()
		return fmt.Errorf("append trade: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("append trade: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close trade log: %w", err)
	}

	logger.L().Debug().
		Str("path", s.path).
		Str("symbol", rec.Symbol).
		Str("side", rec.Side).
		Msg("trade appended")
	return nil
}

func (s *CSVStore) AppendFields(fields map[string]any) error {
	rec, dropped := RecordFromFields(fields)
	if len(dropped) > 0 {
		logger.L().Debug().Strs("fields", dropped).Msg("non-numeric values left empty")
	}
	return s.Append(rec)
}

// ReadAll returns every row in file order. It never fails: a missing or
// malformed file yields an empty table with Fallback set.
func (s *CSVStore) ReadAll() Table {
	f, err := os.Open(s.path)
	if err != nil {
		logger.L().Warn().Err(err).Str("path", s.path).Msg("trade log unreadable, using empty table")
		return fallbackTable()
	}
	defer f.Close()

	t, err := readTable(f)
	if err != nil {
		logger.L().Warn().Err(err).Str("path", s.path).Msg("trade log unparsable, using empty table")
		return fallbackTable()
	}
	return t
}

// terminateLastLine writes a newline if f is non-empty and does not already
// end in one.
func terminateLastLine(f *os.File) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, fi.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}

// Close is a no-op; the file is opened per call.
func (s *CSVStore) Close() error { return nil }

func readTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	// short rows are padded with empty cells below; long rows are an error
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Table{}, errors.New("empty trade log")
	}
	if err != nil {
		return Table{}, err
	}
	if err := checkHeader(header); err != nil {
		return Table{}, err
	}

	t := EmptyTable()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		if len(row) < len(Columns) {
			row = append(row, make([]string, len(Columns)-len(row))...)
		}
		rec, err := recordFromRow(row)
		if err != nil {
			return Table{}, err
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}
