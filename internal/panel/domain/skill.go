package domain

// MaxCustomSkills caps the free-form skill slots a player may add.
const MaxCustomSkills = 3

// Skill is one row of a player's skill sheet. Standard skills carry a fixed
// Name; custom skills use CustomName and the IsCustom flag.
type Skill struct {
	ID         string
	Name       string
	CustomName string
	Attribute  AttributeKey
	Trained    bool
	Ranks      int
	MiscBonus  int
	IsCustom   bool
}

// DisplayName returns the user-visible skill name.
func (s Skill) DisplayName() string {
	if s.IsCustom {
		return s.CustomName
	}
	return s.Name
}

// AttributeModifier converts an ability score to its modifier,
// floor((score-10)/2).
func AttributeModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// SkillTotal computes the derived skill value. The total is never stored.
func SkillTotal(s Skill, attrs Attributes) int {
	return s.Ranks + AttributeModifier(attrs.Value(s.Attribute)) + s.MiscBonus
}

// CountCustomSkills returns how many custom slots are in use.
func CountCustomSkills(skills []Skill) int {
	count := 0
	for _, s := range skills {
		if s.IsCustom {
			count++
		}
	}
	return count
}

// DefaultSkills returns the fixed standard skill sheet assigned to players
// whose persisted row carries no skills. Ids are stable slugs so repeated
// mapping of the same row yields structurally equal results.
func DefaultSkills() []Skill {
	standard := []struct {
		id        string
		name      string
		attribute AttributeKey
	}{
		{"acrobacia", "Acrobacia", AttrDES},
		{"atletismo", "Atletismo", AttrFOR},
		{"furtividade", "Furtividade", AttrDES},
		{"historia", "Historia", AttrINT},
		{"intimidacao", "Intimidacao", AttrCAR},
		{"investigacao", "Investigacao", AttrINT},
		{"medicina", "Medicina", AttrSAB},
		{"natureza", "Natureza", AttrINT},
		{"percepcao", "Percepcao", AttrSAB},
		{"persuasao", "Persuasao", AttrCAR},
		{"religiao", "Religiao", AttrINT},
		{"sobrevivencia", "Sobrevivencia", AttrSAB},
	}

	skills := make([]Skill, 0, len(standard))
	for _, entry := range standard {
		skills = append(skills, Skill{
			ID:        entry.id,
			Name:      entry.name,
			Attribute: entry.attribute,
		})
	}
	return skills
}
