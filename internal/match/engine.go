package match

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/keyword-mapper/internal/logger"
)

// Mapper runs the scoring pass: every keyword against every record.
type Mapper struct {
	scorer      *Scorer
	log         logger.Logger
	workers     int
	progress    io.Writer
	traceScores bool
}

// MapperConfig holds configuration for the mapper
type MapperConfig struct {
	Log logger.Logger
	// Workers > 1 scores keywords in parallel. Records are never reordered.
	Workers int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	// TraceScores logs every non-zero (keyword, record) score at debug level.
	TraceScores bool
	Weights     *FieldWeights
	Tiers       *MatchTiers
}

// NewMapper creates a new mapper
func NewMapper(config MapperConfig) *Mapper {
	log := config.Log
	if log == nil {
		log = logger.NewNop()
	}
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	return &Mapper{
		scorer:      NewScorerWithConfig(config.Weights, config.Tiers),
		log:         log,
		workers:     workers,
		progress:    config.Progress,
		traceScores: config.TraceScores,
	}
}

// Run maps every keyword to at most one record and returns the Mapping Store.
func (m *Mapper) Run(ctx context.Context, keywords []string, records []Record) (*Store, error) {
	m.log.Info("Finding best matches for each keyword",
		logger.Int("keywords", len(keywords)),
		logger.Int("records", len(records)),
		logger.Int("workers", m.workers))

	prepared := m.prepare(records)
	bar := m.newProgressBar(len(keywords))

	var store *Store
	var err error
	if m.workers > 1 {
		store, err = m.runParallel(ctx, keywords, prepared, bar)
	} else {
		store, err = m.runSequential(ctx, keywords, prepared, bar)
	}
	if err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	m.log.Info(fmt.Sprintf("Completed. %d/%d keywords matched.", store.AcceptedCount(), len(keywords)))
	return store, nil
}

func (m *Mapper) runSequential(ctx context.Context, keywords []string, records []Prepared, bar *progressbar.ProgressBar) (*Store, error) {
	store := NewStore()
	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("mapping cancelled: %w", err)
		}
		m.assign(store, m.selectBest(keyword, records))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return store, nil
}

// runParallel scores keywords on a bounded pool and applies the selections in
// keyword order once every scan is done.
func (m *Mapper) runParallel(ctx context.Context, keywords []string, records []Prepared, bar *progressbar.ProgressBar) (*Store, error) {
	selections := make([]Selection, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, keyword := range keywords {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			selections[i] = m.selectBest(keyword, records)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("mapping cancelled: %w", err)
	}

	store := NewStore()
	for _, sel := range selections {
		m.assign(store, sel)
	}
	return store, nil
}

func (m *Mapper) selectBest(keyword string, records []Prepared) Selection {
	if !m.traceScores {
		return m.scorer.SelectBest(keyword, records)
	}

	return m.scorer.SelectBestFunc(keyword, records, func(p *Prepared, score float64, details []FieldScore) {
		if score <= 0 {
			return
		}
		fields := make([]string, 0, len(details))
		for _, d := range details {
			fields = append(fields, fmt.Sprintf("%s %d/%d words (score: %.1f)", d.Field, d.Matches, d.Words, d.Score))
		}
		m.log.Debug("Scored record",
			logger.String("keyword", keyword),
			logger.String("url", p.URL),
			logger.Float64("score", score),
			logger.Strings("matches", fields))
	})
}

// assign stores the selection. Only the final winner is checked for an empty
// URL; an empty-URL record that led and was later overtaken logs nothing.
func (m *Mapper) assign(store *Store, sel Selection) {
	if sel.Best != nil && sel.Best.URL == "" {
		m.log.Warn("Empty URL found for best match",
			logger.String("keyword", sel.Keyword),
			logger.String("title", sel.Best.Title))
	}

	if sel.Accepted {
		m.log.Debug("Matched",
			logger.String("keyword", sel.Keyword),
			logger.String("url", sel.Best.URL),
			logger.Float64("score", sel.Best.Score))
	} else {
		m.log.Debug("No good match",
			logger.String("keyword", sel.Keyword),
			logger.Float64("best_score", sel.BestScore()))
	}

	store.Set(sel.Keyword, sel.Entry())
}

func (m *Mapper) prepare(records []Record) []Prepared {
	defer logger.Timed(m.log, "prepare records")()

	prepared := PrepareAll(records)
	for i := range prepared {
		if err := prepared[i].Err; err != nil {
			m.log.Warn("Error extracting content, record scores 0",
				logger.Int("row", i+1),
				logger.String("url", prepared[i].URL),
				logger.Error(err))
		}
	}
	return prepared
}

func (m *Mapper) newProgressBar(total int) *progressbar.ProgressBar {
	if m.progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(m.progress),
		progressbar.OptionSetDescription("Processing keywords"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(m.progress)
		}),
	)
}
