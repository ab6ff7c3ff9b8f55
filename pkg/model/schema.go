// pkg/model/schema.go
package model

// Column names the pipeline knows how to handle. Every one of them is
// optional in the source: a transform whose target column is missing
// becomes a no-op rather than an error.
const (
	ColDateRegistration   = "date_registration"
	ColDateEnrollment     = "date_enrollment"
	ColInclusionCriteria  = "inclusion_criteria"
	ColExclusionCriteria  = "exclusion_criteria"
	ColPrimaryOutcome     = "primary_outcome"
	ColSecondaryOutcome   = "secondary_outcome"
	ColIntervention       = "intervention"
	ColTargetSampleSize   = "target_sample_size"
	ColInclusionAgeMin    = "inclusion_age_min"
	ColInclusionAgeMax    = "inclusion_age_max"
	ColContactAffiliation = "contact_affiliation"
	ColSecondarySponsor   = "secondary_sponsor"
	ColWebAddress         = "web_address"
	ColResultsURLLink     = "results_url_link"
	ColStandardisedCond   = "standardised_condition"
	ColCountries          = "countries"
	ColPrimarySponsor     = "primary_sponsor"
	ColPhase              = "phase"
	ColStudyType          = "study_type"
	ColResultsInd         = "results_ind"
	ColCountryCodes       = "country_codes"

	// Derived columns appended by the normalizer.
	ColYear            = "Year"
	ColSponsorCategory = "sponsor_category"
	ColIncomeLevel     = "income_level"
	ColResultsPosted   = "results_posted"
)

// ExpectedColumns lists every source column the pipeline consults.
var ExpectedColumns = []string{
	ColDateRegistration,
	ColDateEnrollment,
	ColInclusionCriteria,
	ColExclusionCriteria,
	ColPrimaryOutcome,
	ColSecondaryOutcome,
	ColIntervention,
	ColTargetSampleSize,
	ColInclusionAgeMin,
	ColInclusionAgeMax,
	ColContactAffiliation,
	ColSecondarySponsor,
	ColWebAddress,
	ColResultsURLLink,
	ColStandardisedCond,
	ColCountries,
	ColPrimarySponsor,
	ColPhase,
	ColStudyType,
	ColResultsInd,
	ColCountryCodes,
}

// Schema is the single load-time column-presence check. Each transform
// consults it instead of re-probing the table, so the per-column optionality
// rule lives in exactly one place.
type Schema struct {
	present map[string]bool
}

// NewSchema builds a schema from the loaded header columns.
func NewSchema(columns []string) *Schema {
	s := &Schema{present: make(map[string]bool, len(columns))}
	for _, c := range columns {
		s.present[c] = true
	}
	return s
}

// Has reports whether the source carried the named column.
func (s *Schema) Has(col string) bool {
	return s.present[col]
}

// Add marks a column as present after the normalizer derives it.
func (s *Schema) Add(col string) {
	s.present[col] = true
}

// Remove marks a column as no longer present after it is dropped.
func (s *Schema) Remove(col string) {
	delete(s.present, col)
}

// Missing returns the expected columns the source did not carry,
// in ExpectedColumns order. Used for the load report.
func (s *Schema) Missing() []string {
	var out []string
	for _, c := range ExpectedColumns {
		if !s.present[c] {
			out = append(out, c)
		}
	}
	return out
}
