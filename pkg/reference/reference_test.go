package reference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialops/trial-ingress/pkg/reference"
)

func TestSponsorRules_Order(t *testing.T) {
	// The rule order is a contract: Government beats Industry beats
	// Non-profit when a name matches more than one keyword set.
	require.Len(t, reference.SponsorRules, 3)
	assert.Equal(t, reference.SponsorGovernment, reference.SponsorRules[0].Category)
	assert.Equal(t, reference.SponsorIndustry, reference.SponsorRules[1].Category)
	assert.Equal(t, reference.SponsorNonProfit, reference.SponsorRules[2].Category)
}

func TestAgeRules_Order(t *testing.T) {
	require.Len(t, reference.AgeRules, 3)
	assert.Equal(t, []string{"year", "y"}, reference.AgeRules[0].Units)
	assert.Equal(t, []string{"month", "m"}, reference.AgeRules[1].Units)
	assert.True(t, reference.AgeRules[2].Unbounded)
	assert.Equal(t, 120, reference.DefaultAgeRule.Max)
}

func TestIncomeLevelFor(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IND", reference.IncomeLowerMiddle},
		{"USA", reference.IncomeHigh},
		{"KEN", reference.IncomeLow},
		{"BRA", reference.IncomeUpperMiddle},
		{"XYZ", reference.IncomeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, reference.IncomeLevelFor(tt.code))
		})
	}
}

func TestIncomeLevels_Disjoint(t *testing.T) {
	seen := make(map[string]string)
	for level, codes := range reference.IncomeLevels {
		for _, code := range codes {
			prev, dup := seen[code]
			assert.False(t, dup, "code %s in both %s and %s", code, prev, level)
			seen[code] = level
		}
	}
}

func TestCountryName(t *testing.T) {
	t.Run("Should match case-insensitively", func(t *testing.T) {
		name, ok := reference.CountryName("usa")
		require.True(t, ok)
		assert.Equal(t, "United States", name)
	})

	t.Run("Should report unknown codes", func(t *testing.T) {
		_, ok := reference.CountryName("XYZ")
		assert.False(t, ok)
	})

	t.Run("Should name every income-classified country", func(t *testing.T) {
		for _, codes := range reference.IncomeLevels {
			for _, code := range codes {
				_, ok := reference.CountryName(code)
				assert.True(t, ok, code)
			}
		}
	})
}

func TestHighBurdenCountries(t *testing.T) {
	t.Run("Should keep the fixed high-burden list", func(t *testing.T) {
		assert.Equal(t, []string{
			"India", "Mexico", "Tanzania", "Bangladesh", "Bolivia",
			"Côte d'Ivoire", "Kenya", "Egypt",
		}, reference.HighBurdenCountries)
	})

	t.Run("Should only name countries the code table knows", func(t *testing.T) {
		named := make(map[string]bool, len(reference.CountryNames))
		for _, name := range reference.CountryNames {
			named[name] = true
		}
		for _, country := range reference.HighBurdenCountries {
			assert.True(t, named[country], country)
		}
	})
}
