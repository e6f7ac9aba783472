package enums

import "fmt"

// Skill is one entry of the closed worker skill set.
type Skill string

const (
	SkillPlumbing           Skill = "plumbing"
	SkillElectrician        Skill = "electrician"
	SkillCarpenter          Skill = "carpenter"
	SkillCleaner            Skill = "cleaner"
	SkillTutor              Skill = "tutor"
	SkillBabysitter         Skill = "babysitter"
	SkillGardener           Skill = "gardener"
	SkillPainter            Skill = "painter"
	SkillCooking            Skill = "cooking"
	SkillCleaning           Skill = "cleaning"
	SkillMason              Skill = "mason"
	SkillWelder             Skill = "welder"
	SkillTileLayer          Skill = "tile layer"
	SkillConstructionHelper Skill = "construction helper"
	SkillDriver             Skill = "driver"
	SkillStoreHelper        Skill = "store helper"
)

var validSkills = []Skill{
	SkillPlumbing,
	SkillElectrician,
	SkillCarpenter,
	SkillCleaner,
	SkillTutor,
	SkillBabysitter,
	SkillGardener,
	SkillPainter,
	SkillCooking,
	SkillCleaning,
	SkillMason,
	SkillWelder,
	SkillTileLayer,
	SkillConstructionHelper,
	SkillDriver,
	SkillStoreHelper,
}

// String implements fmt.Stringer.
func (s Skill) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Skill.
func (s Skill) IsValid() bool {
	for _, candidate := range validSkills {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSkill converts raw input into a Skill.
func ParseSkill(value string) (Skill, error) {
	for _, candidate := range validSkills {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid skill %q", value)
}

// ValidateSkills checks every entry against the skill set and rejects
// duplicates. It returns one message per offending entry.
func ValidateSkills(values []string) []string {
	var problems []string
	seen := make(map[string]bool, len(values))
	for _, raw := range values {
		if !Skill(raw).IsValid() {
			problems = append(problems, fmt.Sprintf("unknown skill %q", raw))
			continue
		}
		if seen[raw] {
			problems = append(problems, fmt.Sprintf("duplicate skill %q", raw))
			continue
		}
		seen[raw] = true
	}
	return problems
}
