package storage

import (
	"opencanada-grants-parser/internal/scraper"
)

// Header is the output column order, written exactly once per run. "Date
// Agreement" carries the duration text and "Date Agreed" the raw
// agreement-start date; the historical export wrote both columns under
// exactly these names, and downstream consumers key on them, so they are
// preserved verbatim.
var Header = []string{
	"Agreement",
	"Agreement Number",
	"Date Agreement",
	"Date Agreed",
	"Description",
	"Recipient",
	"Recipient Public Name",
	"Price",
	"Location",
}

// Sink is an append-only, order-preserving record writer. Append must make
// the record durable before returning; Close flushes whatever the driver
// still buffers.
type Sink interface {
	Append(rec *scraper.Record) error
	Close() error
}
