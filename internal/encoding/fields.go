package encoding

// Field names as they appear in the training data and in the encoder artifact.
const (
	FieldGender            = "gender"
	FieldRaceEthnicity     = "race/ethnicity"
	FieldParentalEducation = "parental level of education"
	FieldLunch             = "lunch"
	FieldTestPreparation   = "test preparation course"
	FieldReadingScore      = "reading score"
	FieldWritingScore      = "writing score"
)

// CategoricalFields lists the categorical inputs in form order.
var CategoricalFields = []string{
	FieldGender,
	FieldRaceEthnicity,
	FieldParentalEducation,
	FieldLunch,
	FieldTestPreparation,
}

// NumericFields lists the numeric inputs in form order.
var NumericFields = []string{
	FieldReadingScore,
	FieldWritingScore,
}

// DefaultFallbacks are the choices offered for a categorical field when no
// encoder is loaded for it. They are placeholders and can be overridden in config.
func DefaultFallbacks() map[string][]string {
	return map[string][]string{
		FieldGender:        {"female", "male"},
		FieldRaceEthnicity: {"group A", "group B", "group C", "group D", "group E"},
		FieldParentalEducation: {
			"some high school",
			"high school",
			"some college",
			"associate's degree",
			"bachelor's degree",
			"master's degree",
		},
		FieldLunch:           {"standard", "free/reduced"},
		FieldTestPreparation: {"none", "completed"},
	}
}
