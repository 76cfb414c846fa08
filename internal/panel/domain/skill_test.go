package domain

import "testing"

func TestAttributeModifier(t *testing.T) {
	cases := map[int]int{
		1:  -5,
		7:  -2,
		8:  -1,
		9:  -1,
		10: 0,
		11: 0,
		12: 1,
		15: 2,
		18: 4,
		20: 5,
	}
	for score, want := range cases {
		if got := AttributeModifier(score); got != want {
			t.Fatalf("AttributeModifier(%d) = %d, want %d", score, got, want)
		}
	}
}

func TestSkillTotal(t *testing.T) {
	attrs := Attributes{Dexterity: 16}
	skill := Skill{Name: "Furtividade", Attribute: AttrDES, Ranks: 4, MiscBonus: 2}

	// 4 ranks + modifier 3 + misc 2
	if got := SkillTotal(skill, attrs); got != 9 {
		t.Fatalf("SkillTotal = %d, want 9", got)
	}
}

func TestDefaultSkillsStable(t *testing.T) {
	first := DefaultSkills()
	second := DefaultSkills()

	if len(first) == 0 {
		t.Fatal("expected a non-empty default skill sheet")
	}
	if len(first) != len(second) {
		t.Fatalf("default sheet size changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("default skill %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
	for _, s := range first {
		if s.IsCustom {
			t.Fatalf("default skill %q marked custom", s.Name)
		}
		if !s.Attribute.Valid() {
			t.Fatalf("default skill %q has invalid attribute %q", s.Name, s.Attribute)
		}
	}
}

func TestCountCustomSkills(t *testing.T) {
	skills := append(DefaultSkills(),
		Skill{ID: "c1", CustomName: "Gambling", Attribute: AttrCAR, IsCustom: true},
		Skill{ID: "c2", CustomName: "Cooking", Attribute: AttrSAB, IsCustom: true},
	)

	if got := CountCustomSkills(skills); got != 2 {
		t.Fatalf("expected 2 custom skills, got %d", got)
	}
}

func TestSkillDisplayName(t *testing.T) {
	standard := Skill{Name: "Percepcao"}
	custom := Skill{Name: "", CustomName: "Gambling", IsCustom: true}

	if standard.DisplayName() != "Percepcao" {
		t.Fatalf("expected standard name, got %q", standard.DisplayName())
	}
	if custom.DisplayName() != "Gambling" {
		t.Fatalf("expected custom name, got %q", custom.DisplayName())
	}
}
