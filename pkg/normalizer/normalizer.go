// Package normalizer implements the cleaning and categorical-derivation core
// of the trial-ingress pipeline. A raw table goes through a fixed sequence of
// normalization passes; later passes depend on the side effects of earlier
// ones, so the order in Normalize is part of the contract.
package normalizer

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trialops/trial-ingress/pkg/config"
	"github.com/trialops/trial-ingress/pkg/model"
	"github.com/trialops/trial-ingress/pkg/reference"
)

const (
	dateLayout = "2006-01-02"

	// Fill values for absent categorical and results fields.
	unknownValue = "Unknown"
	noResults    = "No"
)

var (
	dateFields = []string{model.ColDateRegistration, model.ColDateEnrollment}

	markupFields = []string{
		model.ColInclusionCriteria,
		model.ColExclusionCriteria,
		model.ColPrimaryOutcome,
		model.ColSecondaryOutcome,
		model.ColIntervention,
	}

	sensitiveFields = []string{
		model.ColContactAffiliation,
		model.ColSecondarySponsor,
		model.ColWebAddress,
		model.ColResultsURLLink,
	}

	fillFields = []string{
		model.ColStandardisedCond,
		model.ColCountries,
		model.ColPrimarySponsor,
		model.ColPhase,
		model.ColStudyType,
	}
)

// Normalizer turns a raw trial table into the canonical cleaned table and
// its published-only subset.
type Normalizer struct {
	cfg    *config.Config
	logger *zap.Logger
}

// Result bundles the outputs of one normalization run. Published is a view
// over the same rows as Cleaned, never an independent derivation.
type Result struct {
	Cleaned   *model.Table
	Published *model.Table
	Metrics   *RunMetrics
}

// New creates a Normalizer.
func New(cfg *config.Config, logger *zap.Logger) (*Normalizer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Normalizer{cfg: cfg, logger: logger}, nil
}

// Normalize runs the full pass sequence over the table. The table is
// mutated in place; rows are only ever dropped, never synthesized.
func (n *Normalizer) Normalize(table *model.Table) (*Result, error) {
	if table == nil {
		return nil, errors.New("table cannot be nil")
	}

	metrics := NewRunMetrics()
	metrics.RowsRead = table.Len()

	schema := model.NewSchema(table.Columns)
	if missing := schema.Missing(); len(missing) > 0 {
		n.logger.Warn("Source is missing expected columns",
			zap.Strings("columns", missing))
	}

	n.normalizeDates(table, schema)
	n.stripMarkupFields(table, schema)

	table, dropped := n.filterSampleSizeOutliers(table, schema)
	metrics.SampleSizeDropped = dropped

	table, dropped = n.filterInvalidAges(table, schema)
	metrics.AgeDropped = dropped

	metrics.RemovedFields = n.dropSensitiveFields(table, schema)

	n.fillDefaults(table, schema)

	metrics.MedianFill, metrics.MedianFilled = n.imputeSampleSize(table, schema)

	metrics.SponsorCounts = n.deriveSponsorCategory(table, schema)
	n.deriveIncomeLevel(table, schema)

	published := n.deriveResultsPosted(table, schema)
	metrics.Published = published.Len()
	metrics.Unpublished = table.Len() - published.Len()
	metrics.YearMin, metrics.YearMax = yearRange(table)

	metrics.Finish()

	n.logger.Info("Normalization complete",
		zap.String("runID", metrics.RunID),
		zap.Int("rowsRead", metrics.RowsRead),
		zap.Int("rowsCleaned", table.Len()),
		zap.Int("outliersRemoved", metrics.OutliersRemoved()),
		zap.Duration("duration", metrics.Duration()))

	return &Result{Cleaned: table, Published: published, Metrics: metrics}, nil
}

// normalizeDates coerces the date fields to the canonical layout, nulling
// anything unparseable, and derives the registration Year column.
func (n *Normalizer) normalizeDates(table *model.Table, schema *model.Schema) {
	for _, field := range dateFields {
		if !schema.Has(field) {
			continue
		}
		for _, row := range table.Rows {
			raw, ok := row.Get(field)
			if !ok {
				continue
			}
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				row.Delete(field)
				continue
			}
			row.Set(field, t.Format(dateLayout))
		}
	}

	if !schema.Has(model.ColDateRegistration) {
		return
	}
	table.AddColumn(model.ColYear)
	schema.Add(model.ColYear)
	for _, row := range table.Rows {
		raw, ok := row.Get(model.ColDateRegistration)
		if !ok {
			row.Delete(model.ColYear)
			continue
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			row.Delete(model.ColYear)
			continue
		}
		row.Set(model.ColYear, strconv.Itoa(t.Year()))
	}
}

// stripMarkupFields cleans the five markup-bearing free-text fields.
func (n *Normalizer) stripMarkupFields(table *model.Table, schema *model.Schema) {
	for _, field := range markupFields {
		if !schema.Has(field) {
			continue
		}
		for _, row := range table.Rows {
			raw, ok := row.Get(field)
			if !ok {
				continue
			}
			// Set drops the column when stripping leaves nothing.
			row.Set(field, StripMarkup(raw))
		}
	}
}

// filterSampleSizeOutliers coerces target_sample_size to numeric text and
// drops rows whose present value falls outside (0, MaxSampleSize]. Rows with
// an absent (or non-numeric, hence nulled) value are kept.
func (n *Normalizer) filterSampleSizeOutliers(table *model.Table, schema *model.Schema) (*model.Table, int) {
	if !schema.Has(model.ColTargetSampleSize) {
		return table, 0
	}

	for _, row := range table.Rows {
		raw, ok := row.Get(model.ColTargetSampleSize)
		if !ok {
			continue
		}
		v, ok := parseSampleSize(raw)
		if !ok {
			row.Delete(model.ColTargetSampleSize)
			continue
		}
		row.Set(model.ColTargetSampleSize, formatSampleSize(v))
	}

	before := table.Len()
	filtered := table.Filter(func(row model.Row) bool {
		raw, ok := row.Get(model.ColTargetSampleSize)
		if !ok {
			return true
		}
		v, _ := parseSampleSize(raw)
		return v > 0 && v <= n.cfg.MaxSampleSize
	})
	dropped := before - filtered.Len()

	if dropped > 0 {
		n.logger.Info("Dropped sample-size outliers", zap.Int("rows", dropped))
	}
	return filtered, dropped
}

// filterInvalidAges drops rows whose inclusion age bounds fail validation.
// It only runs when the source carries both age columns; each bound must
// independently validate for the row to survive.
func (n *Normalizer) filterInvalidAges(table *model.Table, schema *model.Schema) (*model.Table, int) {
	if !schema.Has(model.ColInclusionAgeMin) || !schema.Has(model.ColInclusionAgeMax) {
		return table, 0
	}

	before := table.Len()
	filtered := table.Filter(func(row model.Row) bool {
		for _, field := range []string{model.ColInclusionAgeMin, model.ColInclusionAgeMax} {
			raw, ok := row.Get(field)
			if ok && !ValidateAge(raw) {
				return false
			}
		}
		return true
	})
	dropped := before - filtered.Len()

	if dropped > 0 {
		n.logger.Info("Dropped rows with implausible ages", zap.Int("rows", dropped))
	}
	return filtered, dropped
}

// dropSensitiveFields removes the fields that must never reach downstream
// consumers. Idempotent; returns the fields actually removed.
func (n *Normalizer) dropSensitiveFields(table *model.Table, schema *model.Schema) []string {
	var removed []string
	for _, field := range sensitiveFields {
		if !table.HasColumn(field) {
			continue
		}
		table.DropColumn(field)
		schema.Remove(field)
		removed = append(removed, field)
	}
	if len(removed) > 0 {
		n.logger.Info("Removed sensitive fields", zap.Strings("fields", removed))
	}
	return removed
}

// fillDefaults fills the categorical fields with "Unknown" and results_ind
// with "No" wherever values are absent.
func (n *Normalizer) fillDefaults(table *model.Table, schema *model.Schema) {
	for _, field := range fillFields {
		if !schema.Has(field) {
			continue
		}
		for _, row := range table.Rows {
			if _, ok := row.Get(field); !ok {
				row.Set(field, unknownValue)
			}
		}
	}

	if !schema.Has(model.ColResultsInd) {
		return
	}
	for _, row := range table.Rows {
		if _, ok := row.Get(model.ColResultsInd); !ok {
			row.Set(model.ColResultsInd, noResults)
		}
	}
}

// imputeSampleSize fills absent sample sizes with the median of the values
// present after outlier filtering. Median over mean because sample-size
// distributions are heavily right-skewed.
func (n *Normalizer) imputeSampleSize(table *model.Table, schema *model.Schema) (float64, int) {
	if !schema.Has(model.ColTargetSampleSize) {
		return 0, 0
	}

	var present []float64
	for _, row := range table.Rows {
		raw, ok := row.Get(model.ColTargetSampleSize)
		if !ok {
			continue
		}
		if v, ok := parseSampleSize(raw); ok {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0, 0
	}

	sort.Float64s(present)
	median := sampleMedian(present)

	filled := 0
	for _, row := range table.Rows {
		if _, ok := row.Get(model.ColTargetSampleSize); !ok {
			row.Set(model.ColTargetSampleSize, formatSampleSize(median))
			filled++
		}
	}

	if filled > 0 {
		n.logger.Info("Imputed missing sample sizes",
			zap.Float64("median", median),
			zap.Int("rows", filled))
	}
	return median, filled
}

// deriveSponsorCategory adds the sponsor_category column to every row and
// returns the category distribution.
func (n *Normalizer) deriveSponsorCategory(table *model.Table, schema *model.Schema) map[string]int {
	table.AddColumn(model.ColSponsorCategory)
	schema.Add(model.ColSponsorCategory)

	counts := make(map[string]int)
	for _, row := range table.Rows {
		category := reference.SponsorUnknown
		if name, ok := row.Get(model.ColPrimarySponsor); ok {
			category = ClassifySponsor(name)
		}
		row.Set(model.ColSponsorCategory, category)
		counts[category]++
	}
	return counts
}

// deriveIncomeLevel adds the income_level column to every row, classified
// by the first listed country code.
func (n *Normalizer) deriveIncomeLevel(table *model.Table, schema *model.Schema) {
	table.AddColumn(model.ColIncomeLevel)
	schema.Add(model.ColIncomeLevel)

	for _, row := range table.Rows {
		level := reference.IncomeUnknown
		if codes, ok := row.Get(model.ColCountryCodes); ok {
			level = MapIncome(codes)
		}
		row.Set(model.ColIncomeLevel, level)
	}
}

// deriveResultsPosted adds the results_posted flag and returns the published
// subset as a view over the cleaned rows.
func (n *Normalizer) deriveResultsPosted(table *model.Table, schema *model.Schema) *model.Table {
	table.AddColumn(model.ColResultsPosted)
	schema.Add(model.ColResultsPosted)

	for _, row := range table.Rows {
		posted := false
		if ind, ok := row.Get(model.ColResultsInd); ok {
			posted = strings.ToUpper(strings.TrimSpace(ind)) == "YES"
		}
		row.Set(model.ColResultsPosted, strconv.FormatBool(posted))
	}

	return table.Filter(func(row model.Row) bool {
		v, _ := row.Get(model.ColResultsPosted)
		return v == "true"
	})
}

// yearRange scans the cleaned rows for the min and max registration year.
func yearRange(table *model.Table) (int, int) {
	min, max := 0, 0
	for _, row := range table.Rows {
		raw, ok := row.Get(model.ColYear)
		if !ok {
			continue
		}
		y, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if min == 0 || y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max
}
