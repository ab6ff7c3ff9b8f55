// Package reference holds the static lookup data the normalizer classifies
// against: country names, World Bank income tiers, sponsor keyword rules and
// age-unit validation rules. Everything here is loaded once per process and
// never mutated afterwards.
package reference

import "strings"

// Sponsor categories.
const (
	SponsorGovernment = "Government"
	SponsorIndustry   = "Industry"
	SponsorNonProfit  = "Non-profit"
	SponsorOther      = "Other"
	SponsorUnknown    = "Unknown"
)

// Income levels.
const (
	IncomeLow         = "Low"
	IncomeLowerMiddle = "Lower middle"
	IncomeUpperMiddle = "Upper middle"
	IncomeHigh        = "High"
	IncomeUnknown     = "Unknown"
)

// SponsorRule pairs a category with the uppercase keywords that select it.
// Rules are evaluated top to bottom and the first match wins, so the slice
// order is the tie-break: a name carrying both a Government and an Industry
// keyword is Government.
type SponsorRule struct {
	Category string
	Keywords []string
}

// AgeRule maps unit substrings to the inclusive bounds a leading number must
// satisfy. Units are matched case-insensitively against the whole descriptor,
// first rule wins. Unbounded == true accepts any number.
//
// The single-letter units ("y", "m") match inside unrelated words; that is
// the inherited behavior and is kept deliberately.
type AgeRule struct {
	Units     []string
	Min, Max  int
	Unbounded bool
}

// CountryNames maps ISO alpha-3 codes to display names.
var CountryNames = map[string]string{
	"BRA": "Brazil", "IND": "India", "ARG": "Argentina", "KEN": "Kenya",
	"TZA": "Tanzania", "ETH": "Ethiopia", "CIV": "Côte d'Ivoire", "UGA": "Uganda",
	"ESP": "Spain", "USA": "United States", "BGD": "Bangladesh", "SDN": "Sudan",
	"CHN": "China", "BOL": "Bolivia", "COL": "Colombia", "SEN": "Senegal",
	"NLD": "Netherlands", "GBR": "United Kingdom", "LAO": "Laos", "CHE": "Switzerland",
	"PHL": "Philippines", "KHM": "Cambodia", "VNM": "Vietnam", "MEX": "Mexico",
	"NPL": "Nepal", "DEU": "Germany", "FRA": "France", "ZWE": "Zimbabwe",
	"BFA": "Burkina Faso", "MDG": "Madagascar", "IDN": "Indonesia", "ZMB": "Zambia",
	"EGY": "Egypt", "GHA": "Ghana", "GAB": "Gabon", "CHL": "Chile",
	"MOZ": "Mozambique", "THA": "Thailand", "CAN": "Canada", "ECU": "Ecuador",
	"TLS": "Timor-Leste", "FJI": "Fiji", "LKA": "Sri Lanka", "GTM": "Guatemala",
	"BEL": "Belgium", "GNB": "Guinea-Bissau", "MWI": "Malawi", "SLB": "Solomon Islands",
	"RWA": "Rwanda", "HTI": "Haiti", "NER": "Niger", "PER": "Peru",
	"VEN": "Venezuela", "LBR": "Liberia", "AUS": "Australia", "COD": "DR Congo",
	"HND": "Honduras", "CMR": "Cameroon", "ZAF": "South Africa", "MLI": "Mali",
	"SLV": "El Salvador", "MRT": "Mauritania",
}

// IncomeLevels groups ISO alpha-3 codes by World Bank income tier.
var IncomeLevels = map[string][]string{
	IncomeLow: {
		"BFA", "MDG", "MOZ", "TZA", "KEN", "ETH", "UGA", "ZWE",
		"MWI", "RWA", "NER", "LBR", "COD", "SDN", "HTI", "MRT",
		"GNB", "MLI",
	},
	IncomeLowerMiddle: {
		"IND", "BGD", "PHL", "VNM", "IDN", "EGY", "GHA", "ZMB",
		"CMR", "NPL", "KHM", "LAO", "LKA", "TLS", "HND", "SLV",
		"SEN", "SLB",
	},
	IncomeUpperMiddle: {
		"CHN", "BRA", "MEX", "COL", "THA", "ZAF", "PER", "ECU",
		"GAB", "ARG", "VEN", "BOL", "CIV", "GTM", "FJI",
	},
	IncomeHigh: {
		"USA", "GBR", "DEU", "FRA", "ESP", "NLD", "CHE", "CAN",
		"AUS", "BEL", "CHL",
	},
}

// SponsorRules is the ordered keyword rule list for sponsor classification.
var SponsorRules = []SponsorRule{
	{
		Category: SponsorGovernment,
		Keywords: []string{
			"MINISTRY", "GOVERNMENT", "NATIONAL INSTITUTE", "CDC",
			"NIH", "DEPARTMENT", "COUNCIL",
		},
	},
	{
		Category: SponsorIndustry,
		Keywords: []string{
			"PHARMA", "INC", "CORP", "LTD", "LLC", "DIVISION",
			"LIMITED", "KGAA",
		},
	},
	{
		Category: SponsorNonProfit,
		Keywords: []string{
			"UNIVERSITY", "HOSPITAL", "FOUNDATION", "INTERNATIONAL",
			"NGO", "TRUST", "WHO", "ORGANISATION", "INSTITUTE",
			"INSTITUTIONAL", "ACADEMY", "DRUGS FOR NEGLECTED DISEASES INITIATIVE",
			"DRUGS FOR NEGLECTED DISEASES", "SCHOOL", "ACADEMIC", "IDRI", "PATH",
		},
	},
}

// AgeRules is the ordered unit rule list for age-descriptor validation.
// 1440 is 120 years expressed in months.
var AgeRules = []AgeRule{
	{Units: []string{"year", "y"}, Min: 0, Max: 120},
	{Units: []string{"month", "m"}, Min: 0, Max: 1440},
	{Units: []string{"day", "week"}, Unbounded: true},
}

// DefaultAgeRule bounds descriptors with no recognized unit.
var DefaultAgeRule = AgeRule{Min: 0, Max: 120}

// HighBurdenCountries lists the countries the downstream drug-trend analysis
// treats as high-burden for neglected tropical diseases.
var HighBurdenCountries = []string{
	"India", "Mexico", "Tanzania", "Bangladesh", "Bolivia",
	"Côte d'Ivoire", "Kenya", "Egypt",
}

// incomeByCode is the reverse index of IncomeLevels, built once at init.
var incomeByCode = func() map[string]string {
	m := make(map[string]string)
	for level, codes := range IncomeLevels {
		for _, code := range codes {
			m[code] = level
		}
	}
	return m
}()

// IncomeLevelFor returns the income tier for an uppercase ISO alpha-3 code,
// or IncomeUnknown if the code is not classified.
func IncomeLevelFor(code string) string {
	if level, ok := incomeByCode[code]; ok {
		return level
	}
	return IncomeUnknown
}

// CountryName returns the display name for a country code, matching
// case-insensitively. The second return is false for unknown codes.
func CountryName(code string) (string, bool) {
	name, ok := CountryNames[strings.ToUpper(code)]
	return name, ok
}
