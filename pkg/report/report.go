// Package report turns a normalization result into the per-country count
// artifacts and the end-of-run log summary consumed alongside the cleaned
// tables.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/trialops/trial-ingress/pkg/ingest"
	"github.com/trialops/trial-ingress/pkg/model"
	"github.com/trialops/trial-ingress/pkg/normalizer"
	"github.com/trialops/trial-ingress/pkg/reference"
)

// Output artifact names, fixed contracts for the downstream stages.
const (
	FileCountryStats          = "country_statistics.csv"
	FileCountryIndustry       = "country_Industry.csv"
	FilePublishedCountryStats = "published_country_statistics.csv"
)

// CountryCount is one row of a per-country trial count artifact.
type CountryCount struct {
	Country string
	Count   int
}

// Reporter emits the country artifacts and the run summary.
type Reporter struct {
	logger *zap.Logger
}

// NewReporter creates a Reporter.
func NewReporter(logger *zap.Logger) (*Reporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Reporter{logger: logger}, nil
}

// CountryCounts tallies trials per country name over a table. Multi-country
// code fields are split on pipes; codes missing from the reference table are
// skipped. Sorted by descending count, ties alphabetically.
func CountryCounts(table *model.Table) []CountryCount {
	tally := make(map[string]int)
	for _, row := range table.Rows {
		raw, ok := row.Get(model.ColCountryCodes)
		if !ok {
			continue
		}
		for _, code := range strings.Split(strings.TrimSpace(raw), "|") {
			name, known := reference.CountryName(strings.TrimSpace(code))
			if known {
				tally[name]++
			}
		}
	}

	counts := make([]CountryCount, 0, len(tally))
	for name, count := range tally {
		counts = append(counts, CountryCount{Country: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Country < counts[j].Country
	})
	return counts
}

// WriteCountryArtifacts persists the all-trials, industry-only and
// published-only country counts.
func (r *Reporter) WriteCountryArtifacts(sink *ingest.CSVSink, result *normalizer.Result) error {
	if sink == nil {
		return errors.New("sink cannot be nil")
	}
	if result == nil {
		return errors.New("result cannot be nil")
	}
	if !result.Cleaned.HasColumn(model.ColCountryCodes) {
		return nil
	}

	all := CountryCounts(result.Cleaned)
	if err := r.writeCounts(sink, FileCountryStats, all); err != nil {
		return err
	}
	r.logger.Info("Countries with trials", zap.Int("countries", len(all)))

	industry := result.Cleaned.Filter(func(row model.Row) bool {
		v, _ := row.Get(model.ColSponsorCategory)
		return v == reference.SponsorIndustry
	})
	if counts := CountryCounts(industry); len(counts) > 0 {
		if err := r.writeCounts(sink, FileCountryIndustry, counts); err != nil {
			return err
		}
		r.logger.Info("Industry-sponsored footprint",
			zap.Int("trials", industry.Len()),
			zap.Int("countries", len(counts)))
	}

	return r.writeCounts(sink, FilePublishedCountryStats, CountryCounts(result.Published))
}

func (r *Reporter) writeCounts(sink *ingest.CSVSink, name string, counts []CountryCount) error {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Country, strconv.Itoa(c.Count)})
	}
	if err := sink.WriteRecords(name, []string{"country", "count"}, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// LogSummary reports the run's headline numbers: drop counts per stage, the
// sponsor distribution, the published split and the year range.
func (r *Reporter) LogSummary(result *normalizer.Result) {
	m := result.Metrics
	total := result.Cleaned.Len()

	r.logger.Info("Run summary",
		zap.String("runID", m.RunID),
		zap.Int("rawRows", m.RowsRead),
		zap.Int("malformedRowsSkipped", m.RowsMalformed),
		zap.Int("sampleSizeOutliersDropped", m.SampleSizeDropped),
		zap.Int("ageOutliersDropped", m.AgeDropped),
		zap.Strings("removedFields", m.RemovedFields),
		zap.Float64("sampleSizeMedianFill", m.MedianFill),
		zap.Int("sampleSizesImputed", m.MedianFilled),
		zap.Int("cleanedRows", m.CleanedRows()),
		zap.Duration("duration", m.Duration()))

	for _, category := range []string{
		reference.SponsorGovernment,
		reference.SponsorIndustry,
		reference.SponsorNonProfit,
		reference.SponsorOther,
		reference.SponsorUnknown,
	} {
		count, ok := m.SponsorCounts[category]
		if !ok {
			continue
		}
		r.logger.Info("Sponsor category",
			zap.String("category", category),
			zap.Int("trials", count),
			zap.String("share", percent(count, total)))
	}

	r.logger.Info("Results publication split",
		zap.Int("published", m.Published),
		zap.String("publishedShare", percent(m.Published, total)),
		zap.Int("unpublished", m.Unpublished),
		zap.String("unpublishedShare", percent(m.Unpublished, total)))

	if m.YearMin != 0 {
		r.logger.Info("Registration year range",
			zap.Int("from", m.YearMin),
			zap.Int("to", m.YearMax))
	}
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
