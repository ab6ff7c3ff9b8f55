// pkg/normalizer/metrics.go
package normalizer

import (
	"time"

	"github.com/google/uuid"
)

// RunMetrics tracks what a single normalization run read, dropped, filled
// and derived. Collaborators may rely on these counts being reported but
// not on any exact log text.
type RunMetrics struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time

	RowsRead      int
	RowsMalformed int

	SampleSizeDropped int
	AgeDropped        int
	RemovedFields     []string

	MedianFill   float64
	MedianFilled int

	SponsorCounts map[string]int
	Published     int
	Unpublished   int

	// Registration-year range over the cleaned rows; zero when no row
	// carried a parseable registration date.
	YearMin int
	YearMax int
}

// NewRunMetrics creates a metrics tracker for a new run.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		RunID:         uuid.New().String(),
		StartTime:     time.Now(),
		SponsorCounts: make(map[string]int),
	}
}

// Finish stamps the end of the run.
func (m *RunMetrics) Finish() {
	m.EndTime = time.Now()
}

// Duration returns how long the run took (or has taken so far).
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// OutliersRemoved returns the total rows removed by the policy filters.
func (m *RunMetrics) OutliersRemoved() int {
	return m.SampleSizeDropped + m.AgeDropped
}

// CleanedRows returns how many rows survived the run.
func (m *RunMetrics) CleanedRows() int {
	return m.Published + m.Unpublished
}
