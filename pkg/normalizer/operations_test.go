package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trialops/trial-ingress/pkg/normalizer"
	"github.com/trialops/trial-ingress/pkg/reference"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags removed and newline collapsed", "<b>Age ≥ 18</b>\nYears", "Age ≥ 18 Years"},
		{"all whitespace becomes empty", "   ", ""},
		{"literal escape sequences flattened", `first\r\nsecond\nthird`, "first second third"},
		{"whitespace runs collapsed", "a \t\t b\n\n c", "a b c"},
		{"nested tags", "<div><p>text</p></div>", "text"},
		{"tag-only input becomes empty", "<br/>", ""},
		{"plain text untouched", "randomized controlled trial", "randomized controlled trial"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.StripMarkup(tt.in))
		})
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plausible years", "18 years", true},
		{"implausible years", "150 years", false},
		{"bare y unit", "80 y", true},
		{"months within bound", "18 months", true},
		{"months beyond bound", "1500 months", false},
		{"days always valid", "30 days", true},
		{"weeks always valid", "200 weeks", true},
		{"no digits is valid", "adults only", true},
		{"empty is valid", "", true},
		// The single-letter units match inside ordinary words; this is
		// inherited behavior and pinned here rather than fixed.
		{"y inside unrelated word bounds as years", "130 maybe", false},
		{"m inside unrelated word bounds as months", "200 maximum", true},
		{"no unit falls back to year bounds", "121", false},
		{"zero is within bounds", "0 years", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.ValidateAge(tt.in))
		})
	}
}

func TestClassifySponsor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"government keyword wins over industry", "Ministry of Health Pharma Corp", reference.SponsorGovernment},
		{"nih is government", "National Institute of Health", reference.SponsorGovernment},
		{"industry", "Pfizer Inc", reference.SponsorIndustry},
		{"non-profit", "London School of Hygiene", reference.SponsorNonProfit},
		{"industry wins over non-profit", "Pharma Trust Ltd", reference.SponsorIndustry},
		{"literal unknown", "unknown", reference.SponsorUnknown},
		{"empty", "", reference.SponsorUnknown},
		{"no keyword match", "Jane Doe", reference.SponsorOther},
		{"case insensitive", "ministry of health", reference.SponsorGovernment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.ClassifySponsor(tt.in))
		})
	}
}

func TestMapIncome(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first code wins for multi-country", "IND|USA", reference.IncomeLowerMiddle},
		{"single high income", "USA", reference.IncomeHigh},
		{"lowercase is uppercased", "usa", reference.IncomeHigh},
		{"comma separated", "BRA, MEX", reference.IncomeUpperMiddle},
		{"semicolon separated", "KEN;USA", reference.IncomeLow},
		{"unclassified code", "XXX", reference.IncomeUnknown},
		{"empty", "", reference.IncomeUnknown},
		{"leading separator yields unknown", "|USA", reference.IncomeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.MapIncome(tt.in))
		})
	}
}
