package deliveryreport

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"resumenapi/pkg/contracts/domain"
)

// Builder computes per-driver delivery summaries.
type Builder struct {
	variant Variant
	rules   rules
	logger  *slog.Logger
	now     func() time.Time
}

// NewBuilder creates a builder for the given variant. A nil logger falls back
// to slog.Default.
func NewBuilder(variant Variant, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if variant == "" {
		variant = DefaultVariant
	}
	return &Builder{
		variant: variant,
		rules:   variant.rules(),
		logger:  logger.With(slog.String("component", "delivery_report_builder")),
		now:     time.Now,
	}
}

// Variant returns the rule set this builder applies.
func (b *Builder) Variant() Variant {
	return b.variant
}

// Build ingests table and returns the report holding the original table
// (headers trimmed) and the driver summary. It never fails: missing columns
// count as null and produce zero counts.
func (b *Builder) Build(ctx context.Context, table domain.Table) *domain.Report {
	records, stats := Ingest(table)
	if len(stats.MissingColumns) > 0 {
		b.logger.WarnContext(ctx, "input is missing expected columns, treating them as empty",
			slog.Any("missing_columns", stats.MissingColumns),
			slog.String("sheet", table.Name))
	}

	drivers := b.Summarize(records)
	totals := Totals(drivers)

	b.logger.DebugContext(ctx, "delivery summary built",
		slog.String("variant", b.variant.String()),
		slog.Int("rows", stats.Rows),
		slog.Int("drivers", len(drivers)),
		slog.Int("pq_totales", totals.PQTotales),
		slog.Int("paradas", totals.Paradas),
		slog.Int("entregas_temu", totals.EntregasTEMU))

	return &domain.Report{
		ID:          uuid.New().String(),
		Variant:     b.variant.String(),
		SourceSheet: table.Name,
		Original:    table.WithTrimmedHeaders(),
		Drivers:     drivers,
		Totals:      totals,
		GeneratedAt: b.now().UTC(),
	}
}

// driverTally accumulates the counts of one driver.
type driverTally struct {
	routes     map[string]struct{}
	recipients map[string]struct{}
	tracking   int
	temu       int
}

func newDriverTally() *driverTally {
	return &driverTally{
		routes:     make(map[string]struct{}),
		recipients: make(map[string]struct{}),
	}
}

// Summarize groups records by driver and applies the builder's rules. The
// result is sorted by DriverName and excludes the totals row. Records with
// a null DriverName belong to no driver.
func (b *Builder) Summarize(records []domain.DeliveryRecord) []domain.DriverSummary {
	tallies := make(map[string]*driverTally)
	tally := func(name string) *driverTally {
		t, ok := tallies[name]
		if !ok {
			t = newDriverTally()
			tallies[name] = t
		}
		return t
	}

	for _, r := range records {
		if !r.DriverName.Valid {
			continue
		}
		delivered := IsDelivered(r)

		if delivered || !b.rules.packagesDelivered {
			t := tally(r.DriverName.Value)
			switch b.rules.packages {
			case countTrackingNumbers:
				if r.TrackingNo.Valid {
					t.tracking++
				}
			default:
				if r.Route.Valid {
					t.routes[r.Route.Value] = struct{}{}
				}
			}
		}

		if delivered || !b.rules.stopsDelivered {
			t := tally(r.DriverName.Value)
			if r.RecipientName.Valid {
				t.recipients[r.RecipientName.Value] = struct{}{}
			}
		}

		if (delivered || !b.rules.temuDelivered) && IsTEMU(r, b.rules.trimCustomerAccount) {
			t := tally(r.DriverName.Value)
			if r.TrackingNo.Valid {
				t.temu++
			}
		}
	}

	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]domain.DriverSummary, 0, len(names))
	for _, name := range names {
		t := tallies[name]
		pq := len(t.routes)
		if b.rules.packages == countTrackingNumbers {
			pq = t.tracking
		}
		summaries = append(summaries, domain.DriverSummary{
			DriverName:   name,
			PQTotales:    pq,
			Paradas:      len(t.recipients),
			EntregasTEMU: t.temu,
		})
	}
	return summaries
}

// Totals sums the per-driver rows into the TOTAL GENERAL row.
func Totals(drivers []domain.DriverSummary) domain.DriverSummary {
	total := domain.DriverSummary{DriverName: domain.TotalsLabel}
	for _, d := range drivers {
		total = total.Add(d)
	}
	return total
}
