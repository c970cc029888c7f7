// Package processor orchestrates a run: extract campaign ids (cache or live),
// fetch details, enrich, route to a prompt strategy, generate, fold stats, and
// hand the rows to the report sink. Generation is strictly sequential with a
// fixed delay between calls.
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/cache"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/campaign"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/enrich"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/prompt"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/report"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/stats"
)

// ErrorMarker is the description stored for a record whose generation failed.
// The row still appears in the report so a rerun can target it.
const ErrorMarker = "Error generating description"

// ErrNoCampaigns means the extraction window matched nothing. Not a failure,
// but there is no report to write.
var ErrNoCampaigns = errors.New("no campaigns found in extraction window")

// RecordSource extracts campaign ids and details. The Salesforce client is the
// production implementation.
type RecordSource interface {
	CampaignMembers(ctx context.Context, monthsBack, limit int) (ids []string, counts map[string]int, totalQueried int, err error)
	ABMCampaignMembers(ctx context.Context, monthsBack, limit int) (ids []string, counts map[string]int, totalQueried int, err error)
	Campaigns(ctx context.Context, ids []string) ([]campaign.Record, error)
}

// Generator produces one sales description from a composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Sink receives the finished rows and summary.
type Sink interface {
	WriteReport(rows []report.Row, summary stats.Summary, preview bool) (string, error)
}

// Options configures a single run.
type Options struct {
	MonthsBack  int
	MemberLimit int // 0 means unlimited
	BatchSize   int
	BypassCache bool
	Preview     bool
	CallDelay   time.Duration

	ABM      bool
	ABMLimit int // campaigns kept after classification, ABM runs only
}

// Processor wires the pipeline stages together.
type Processor struct {
	source RecordSource
	gen    Generator
	table  *enrich.Table
	cache  *cache.Store
	sink   Sink
	logger zerolog.Logger
}

func New(source RecordSource, gen Generator, table *enrich.Table, store *cache.Store, sink Sink, logger zerolog.Logger) *Processor {
	return &Processor{
		source: source,
		gen:    gen,
		table:  table,
		cache:  store,
		sink:   sink,
		logger: logger,
	}
}

// Run executes one full pipeline pass and returns the report path.
func (p *Processor) Run(ctx context.Context, opts Options) (string, error) {
	if opts.MonthsBack <= 0 {
		opts.MonthsBack = 12
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}

	runID := uuid.NewString()
	logger := p.logger.With().Str("run_id", runID).Logger()
	start := time.Now()

	logger.Info().
		Int("months_back", opts.MonthsBack).
		Int("member_limit", opts.MemberLimit).
		Bool("abm", opts.ABM).
		Bool("preview", opts.Preview).
		Msg("starting run")

	ids, counts, totalQueried, err := p.extract(ctx, opts, logger)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNoCampaigns
	}

	records, err := p.source.Campaigns(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("fetch campaign details: %w", err)
	}
	for i := range records {
		records[i].MemberCount = counts[records[i].ID]
	}

	if opts.ABM && opts.ABMLimit > 0 && len(records) > opts.ABMLimit {
		records = records[:opts.ABMLimit]
	}

	acc := stats.NewAccumulator()
	rows := make([]report.Row, 0, len(records))

	batches := (len(records) + opts.BatchSize - 1) / opts.BatchSize
	for b := 0; b < batches; b++ {
		lo := b * opts.BatchSize
		hi := lo + opts.BatchSize
		if hi > len(records) {
			hi = len(records)
		}

		logger.Info().
			Int("batch", b+1).
			Int("batches", batches).
			Int("records", hi-lo).
			Msg("processing batch")

		for i := lo; i < hi; i++ {
			row := p.processOne(ctx, records[i], opts, acc, logger)
			rows = append(rows, row)

			if len(rows)%100 == 0 {
				logger.Info().Int("processed", len(rows)).Int("total", len(records)).Msg("progress")
			}
			if !opts.Preview && opts.CallDelay > 0 && i < len(records)-1 {
				time.Sleep(opts.CallDelay)
			}
		}
	}

	summary := acc.Finalize(totalQueried, time.Since(start))
	summary.RunID = runID

	path, err := p.sink.WriteReport(rows, summary, opts.Preview)
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	logger.Info().
		Int("processed", summary.Processed).
		Int("succeeded", summary.Succeeded).
		Int("errored", summary.Errored).
		Str("report", path).
		Msg("run complete")
	return path, nil
}

// extract resolves the id set for this run: cache slot when compatible,
// otherwise a live member query. ABM runs always query live; the slot holds
// unfiltered extractions only.
func (p *Processor) extract(ctx context.Context, opts Options, logger zerolog.Logger) ([]string, map[string]int, int, error) {
	if opts.ABM {
		// Overshoot the member limit so classification still has enough
		// campaigns to fill ABMLimit after trimming.
		limit := opts.MemberLimit
		if opts.ABMLimit > 0 {
			limit = opts.ABMLimit * 10
		}
		ids, counts, total, err := p.source.ABMCampaignMembers(ctx, opts.MonthsBack, limit)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("extract abm campaign members: %w", err)
		}
		return ids, counts, total, nil
	}

	if !opts.BypassCache {
		if e := p.cache.Load(); cache.Compatible(e, opts.MonthsBack, opts.MemberLimit) {
			logger.Info().Int("campaigns", len(e.RecordIDs)).Msg("using cached extraction")
			return e.RecordIDs, e.MemberCounts, e.TotalQueried, nil
		}
	}

	ids, counts, total, err := p.source.CampaignMembers(ctx, opts.MonthsBack, opts.MemberLimit)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("extract campaign members: %w", err)
	}

	// The slot must reflect this extraction before any generation spend; a
	// cache that cannot be trusted is worse than no cache.
	if err := p.cache.Save(ids, counts, total, opts.MemberLimit, opts.MonthsBack); err != nil {
		return nil, nil, 0, fmt.Errorf("save extraction cache: %w", err)
	}
	return ids, counts, total, nil
}

// processOne runs the enrich/route/generate stages for a single record. A
// generation failure is absorbed into an error row; it never stops the run.
func (p *Processor) processOne(ctx context.Context, rec campaign.Record, opts Options, acc *stats.Accumulator, logger zerolog.Logger) report.Row {
	enriched := p.table.Enrich(rec)
	strategy := prompt.Select(rec.Channel)
	composed := prompt.Build(enriched, strategy)

	row := report.Row{
		Record:   rec,
		Strategy: strategy.Name,
		Prompt:   composed,
	}
	if opts.ABM {
		row.ABMClass = string(campaign.ClassifyABM(rec))
	}

	desc, err := p.gen.Generate(ctx, composed)
	if err != nil {
		logger.Error().Err(err).Str("campaign_id", rec.ID).Msg("generation failed")
		row.Description = ErrorMarker
		row.Succeeded = false
	} else {
		row.Description = desc
		row.Succeeded = true
	}

	acc.Add(stats.Delta{
		Succeeded:      row.Succeeded,
		DescriptionLen: len(row.Description),
		Channel:        rec.Channel,
		Vertical:       rec.Vertical,
		Territory:      rec.Territory,
		Attributable:   !rec.NonAttributable,
		SalesGenerated: strings.EqualFold(rec.Channel, "Sales Generated"),
	})
	return row
}
