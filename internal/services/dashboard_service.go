// Package services orchestrates uploads and dashboard computation over
// the session dataset.
package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"khata/internal/core"
	"khata/internal/dataset"
	"khata/internal/filter"
	"khata/internal/importer"
	"khata/internal/report"
)

// ErrNoMatches means the active filters selected nothing from a
// non-empty dataset.
var ErrNoMatches = errors.New("no transactions match the filters")

// UploadPublisher announces accepted uploads to interested consumers.
type UploadPublisher interface {
	PublishDatasetUploaded(ctx context.Context, records int, checksum string) error
}

// Dashboard is everything one render of the page needs.
type Dashboard struct {
	Empty bool

	Balance      report.BalanceSnapshot
	Trends       report.FlowTrends
	Categories   []report.CategoryShare
	CashFlow     []report.SeriesPoint
	Places       map[string]int
	Monthly      []report.MonthTotals
	Descriptions []report.DescriptionGroup
}

// DashboardService computes chart-ready aggregates over the session
// dataset.
type DashboardService struct {
	store     dataset.Store
	publisher UploadPublisher
}

func NewDashboardService(store dataset.Store, publisher UploadPublisher) *DashboardService {
	return &DashboardService{
		store:     store,
		publisher: publisher,
	}
}

// Upload parses a CSV stream and, if it is well formed, replaces the
// session dataset wholesale. A parse failure leaves the previous
// dataset untouched. Returns the number of records loaded.
func (s *DashboardService) Upload(ctx context.Context, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}

	records, err := importer.Parse(bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("parse upload: %w", err)
	}

	if err := s.store.Replace(ctx, records); err != nil {
		return 0, fmt.Errorf("replace dataset: %w", err)
	}

	s.publishUploaded(ctx, len(records), raw)

	return len(records), nil
}

func (s *DashboardService) publishUploaded(ctx context.Context, records int, raw []byte) {
	if s.publisher == nil {
		return
	}

	sum := sha256.Sum256(raw)
	checksum := hex.EncodeToString(sum[:])

	// Best effort: the dataset is already swapped, a lost event must
	// not fail the upload.
	if err := s.publisher.PublishDatasetUploaded(ctx, records, checksum); err != nil {
		slog.ErrorContext(ctx, "Failed to publish upload message",
			"records", records, "error", err)
	}
}

// Dashboard computes all aggregates for the given criteria. With no
// dataset loaded it returns an empty dashboard and no error; with a
// dataset loaded but nothing matching it returns ErrNoMatches.
func (s *DashboardService) Dashboard(ctx context.Context, c filter.Criteria) (Dashboard, error) {
	base, err := s.store.Records(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load dataset: %w", err)
	}
	if len(base) == 0 {
		return Dashboard{Empty: true}, nil
	}

	display := filter.Apply(base, c)
	if len(display) == 0 {
		return Dashboard{}, ErrNoMatches
	}

	// The category chart ignores the low-value regrouping: in the
	// others view it breaks the low-value subset down by its real
	// keywords, taken from the unfiltered dataset.
	catInput := display
	if c.OthersView() {
		display = core.ReclassifyOthers(display)
		catInput = lowValueSubset(base)
	}

	var dash Dashboard
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		dash.Balance = report.Balance(display)
		return nil
	})
	g.Go(func() error {
		dash.Trends = report.Trends(display)
		return nil
	})
	g.Go(func() error {
		dash.Categories = report.Categories(catInput, c.OthersView())
		return nil
	})
	g.Go(func() error {
		dash.CashFlow = report.CashFlow(display)
		return nil
	})
	g.Go(func() error {
		dash.Places = report.Places(display)
		return nil
	})
	g.Go(func() error {
		// The monthly report always covers the whole dataset.
		dash.Monthly = report.Monthly(base)
		return nil
	})
	g.Go(func() error {
		dash.Descriptions = report.Describe(display)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return dash, nil
}

// Options returns the filter choices the dataset supports.
func (s *DashboardService) Options(ctx context.Context) (report.FilterOptions, error) {
	records, err := s.store.Records(ctx)
	if err != nil {
		return report.FilterOptions{}, fmt.Errorf("load dataset: %w", err)
	}
	return report.Options(records), nil
}

func lowValueSubset(records []core.Record) []core.Record {
	var out []core.Record
	for _, rec := range records {
		if core.BelowOthersThreshold(rec.Amount) {
			out = append(out, rec)
		}
	}
	return out
}
