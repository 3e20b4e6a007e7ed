package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"

	"opencanada-grants-parser/internal/scraper"
	"opencanada-grants-parser/internal/storage"
)

// Writer appends records to a UTF-8 comma-separated file.
type Writer struct {
	file *os.File
	wtr  *csv.Writer
}

var _ storage.Sink = (*Writer)(nil)

// NewWriter creates (or truncates) the output file and writes the header
// row, so even a zero-record run produces a well-formed file.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	wtr := csv.NewWriter(file)
	if err := wtr.Write(storage.Header); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return &Writer{
		file: file,
		wtr:  wtr,
	}, nil
}

// Append writes one record row and flushes it before returning, keeping the
// file complete up to the last processed record if the run aborts later.
func (w *Writer) Append(rec *scraper.Record) error {
	if err := w.wtr.Write(rec.Fields()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.wtr.Flush()
	if err := w.wtr.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.wtr.Flush()
	if err := w.wtr.Error(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
