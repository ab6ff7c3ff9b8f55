// pkg/normalizer/operations.go
package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/trialops/trial-ingress/pkg/reference"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	spaceRunPattern  = regexp.MustCompile(`\s+`)
	digitRunPattern  = regexp.MustCompile(`\d+`)
	codeSplitPattern = regexp.MustCompile(`[|,;/\s]+`)
)

// StripMarkup removes tag-like substrings, flattens literal carriage-return
// and newline escape sequences, collapses whitespace runs and trims. An
// all-whitespace input comes back as "" which the table layer stores as
// an absent value.
func StripMarkup(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\r\n`, " ")
	text = strings.ReplaceAll(text, `\n`, " ")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ValidateAge checks a free-text age descriptor against the ordered unit
// rules. A descriptor without digits is valid; otherwise the first digit run
// is bounds-checked by the first rule whose unit substring appears in the
// text. Absent descriptors are handled by the caller and are always valid.
func ValidateAge(ageText string) bool {
	lower := strings.ToLower(ageText)
	digits := digitRunPattern.FindString(lower)
	if digits == "" {
		return true
	}

	age, err := strconv.Atoi(digits)
	if err != nil {
		// Digit run too long for an int; no plausible bound accepts it.
		age = math.MaxInt
	}

	for _, rule := range reference.AgeRules {
		for _, unit := range rule.Units {
			if strings.Contains(lower, unit) {
				if rule.Unbounded {
					return true
				}
				return age >= rule.Min && age <= rule.Max
			}
		}
	}

	rule := reference.DefaultAgeRule
	return age >= rule.Min && age <= rule.Max
}

// ClassifySponsor maps a primary-sponsor name onto a category via the
// ordered keyword rules. Empty or literally "unknown" names are Unknown;
// a name matching no rule is Other.
func ClassifySponsor(name string) string {
	upper := strings.ToUpper(name)
	if upper == "" || upper == "UNKNOWN" {
		return reference.SponsorUnknown
	}

	for _, rule := range reference.SponsorRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(upper, keyword) {
				return rule.Category
			}
		}
	}
	return reference.SponsorOther
}

// MapIncome classifies a country-code field into an income level. Multi-code
// fields are split on pipes, commas, semicolons, slashes or whitespace and
// only the first code counts.
func MapIncome(codeField string) string {
	first := codeSplitPattern.Split(strings.ToUpper(strings.TrimSpace(codeField)), -1)[0]
	if first == "" {
		return reference.IncomeUnknown
	}
	return reference.IncomeLevelFor(first)
}

// parseSampleSize coerces a raw sample-size cell to a number. Anything
// non-numeric (including NaN/Inf spellings) reports false and is treated
// as absent.
func parseSampleSize(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// formatSampleSize renders a sample size back into canonical numeric text.
func formatSampleSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sampleMedian returns the median of an ascending-sorted sample. Even-sized
// samples interpolate between the two middle order statistics; the empirical
// quantile alone would return the lower one, which on right-skewed sample
// sizes can be far below the true median.
func sampleMedian(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
