package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"opencanada-grants-parser/internal/config"
	"opencanada-grants-parser/internal/fetcher"
	"opencanada-grants-parser/internal/observability"
	"opencanada-grants-parser/internal/scraper"
	"opencanada-grants-parser/internal/storage"
)

// PageFetcher retrieves one listing page. Satisfied by *fetcher.Fetcher;
// narrowed to an interface so the crawl loop is testable without a network.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Response, error)
}

type Orchestrator struct {
	cfg     *config.Config
	logger  *observability.Logger
	fetcher PageFetcher
	scraper *scraper.Scraper
	sink    storage.Sink
	out     io.Writer
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f PageFetcher,
	s *scraper.Scraper,
	sink storage.Sink,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		fetcher: f,
		scraper: s,
		sink:    sink,
		out:     os.Stdout,
	}
}

type CrawlStats struct {
	Pages         int
	Records       int
	Skipped       int
	StoppedReason string
}

// Run drives the crawl: fetch a page, gate every record against the cutoff
// before touching any other field, extract and append the keepers. The loop
// ends when the gate reports a record older than the cutoff (the listing is
// sorted newest-first, so nothing later can qualify), when a page comes back
// with no records, or on a fatal error. There is deliberately no page cap:
// an unbounded listing is an accepted operational risk, not something to
// mask with an internal limit.
func (o *Orchestrator) Run(ctx context.Context) (*CrawlStats, error) {
	cutoff := o.cfg.CutoffInstant(time.Now())

	o.logger.Info("starting crawl",
		"base_url", o.cfg.BaseURL,
		"window_days", o.cfg.Crawl.WindowDays,
		"cutoff", cutoff.Format("2006-01-02"),
		"start_page", o.cfg.Crawl.StartPage,
	)

	stats := &CrawlStats{}

pages:
	for page := o.cfg.Crawl.StartPage; ; page++ {
		if err := ctx.Err(); err != nil {
			stats.StoppedReason = "cancelled"
			return stats, err
		}

		pageURL := o.cfg.PageURL(page)
		o.logger.Info("fetching page", "page", page, "url", pageURL)

		resp, err := o.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			stats.StoppedReason = fmt.Sprintf("fetch error at page %d", page)
			return stats, fmt.Errorf("fetch page %d: %w", page, err)
		}

		items, err := o.scraper.Items(string(resp.Body))
		if err != nil {
			stats.StoppedReason = fmt.Sprintf("parse error at page %d", page)
			return stats, fmt.Errorf("parse page %d: %w", page, err)
		}

		if len(items) == 0 {
			o.logger.Info("no records on page, end of listing", "page", page)
			stats.StoppedReason = fmt.Sprintf("end of listing at page %d", page)
			break
		}

		stats.Pages++

		for _, item := range items {
			dateRaw := o.scraper.DateText(item)

			outcome, _, parseErr := scraper.EvaluateDate(dateRaw, cutoff)
			switch outcome {
			case scraper.Unparseable:
				stats.Skipped++
				o.logger.Warn("skipping record, could not parse date",
					"page", page,
					"date_raw", dateRaw,
					"error", parseErr,
				)
				continue
			case scraper.Stop:
				o.logger.Info("record older than cutoff, stopping crawl",
					"page", page,
					"date_raw", dateRaw,
				)
				stats.StoppedReason = fmt.Sprintf("cutoff reached at page %d", page)
				break pages
			}

			rec := o.scraper.Extract(item)
			o.printRecord(rec)

			if err := o.sink.Append(rec); err != nil {
				stats.StoppedReason = fmt.Sprintf("write error at page %d", page)
				return stats, fmt.Errorf("append record: %w", err)
			}
			stats.Records++
		}
	}

	o.logger.Info("crawl completed",
		"pages", stats.Pages,
		"records", stats.Records,
		"skipped", stats.Skipped,
		"reason", stats.StoppedReason,
	)

	return stats, nil
}

var recordSeparator = strings.Repeat("─", 42)

// printRecord writes the human-readable console block for one kept record.
func (o *Orchestrator) printRecord(rec *scraper.Record) {
	fmt.Fprintf(o.out, "Agreement:             %s\n", rec.Agreement)
	fmt.Fprintf(o.out, "Agreement Number:      %s\n", rec.AgreementNumber)
	fmt.Fprintf(o.out, "Date Range:            %s\n", rec.DateRange)
	fmt.Fprintf(o.out, "Date Agreed:           %s\n", rec.DateAgreed)
	fmt.Fprintf(o.out, "Description:           %s\n", rec.Description)
	fmt.Fprintf(o.out, "Recipient:             %s\n", rec.Recipient)
	fmt.Fprintf(o.out, "Recipient Public Name: %s\n", rec.RecipientPublicName)
	fmt.Fprintf(o.out, "Price:                 %s\n", rec.Price)
	fmt.Fprintf(o.out, "Location:              %s\n", rec.Location)
	fmt.Fprintln(o.out, recordSeparator)
}
