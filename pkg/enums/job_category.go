package enums

// JobCategory is a suggested job grouping. The set is advisory: postings may
// carry categories outside it, so there is no Parse helper that rejects input.
type JobCategory string

const (
	JobCategoryDomestic     JobCategory = "domestic"
	JobCategoryRepair       JobCategory = "repair"
	JobCategoryConstruction JobCategory = "construction"
	JobCategoryTutoring     JobCategory = "tutoring"
	JobCategoryDriving      JobCategory = "driving"
	JobCategoryGardening    JobCategory = "gardening"
	JobCategoryStoreKeeping JobCategory = "store keeping"
)

var suggestedJobCategories = []JobCategory{
	JobCategoryDomestic,
	JobCategoryRepair,
	JobCategoryConstruction,
	JobCategoryTutoring,
	JobCategoryDriving,
	JobCategoryGardening,
	JobCategoryStoreKeeping,
}

// String implements fmt.Stringer.
func (c JobCategory) String() string {
	return string(c)
}

// IsSuggested reports whether the value belongs to the advisory category set.
func (c JobCategory) IsSuggested() bool {
	for _, candidate := range suggestedJobCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// SuggestedJobCategories returns a copy of the advisory category set.
func SuggestedJobCategories() []JobCategory {
	return append([]JobCategory(nil), suggestedJobCategories...)
}
