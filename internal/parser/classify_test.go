package parser

import "testing"

func TestDetectAttendance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *bool
	}{
		{"no show", "paciente no vino", boolRef(false)},
		{"no show accent typo", "no asistio", boolRef(false)},
		{"no show late wording", "no se presentó", boolRef(false)},
		{"attended", "paciente vino", boolRef(true)},
		{"attended past tense", "asistió", boolRef(true)},
		{"performed", "vacuna realizada", boolRef(true)},
		{"no show wins over its own substring", "no vino", boolRef(false)},
		{"unknown", "vacuna acaros (50)", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectAttendance(tt.text)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil || *got != *tt.want:
				t.Errorf("detectAttendance(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDosage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		value *float64
		unit  *string
	}{
		{"ml with comma", "vacuna 0,5 ml", floatRef(0.5), strRef("ml")},
		{"ml with dot", "vacuna 0.3 ml", floatRef(0.3), strRef("ml")},
		{"cc no space", "2cc", floatRef(2), strRef("cc")},
		{"mg", "xolair 300 mg", floatRef(300), strRef("mg")},
		{"unit before paren", "0,5ml(45)", floatRef(0.5), strRef("ml")},
		{"fused alxoid dose", "alxoid0,3", floatRef(0.3), strRef("ml")},
		{"standalone decimal assumed ml", "vacuna 0,2", floatRef(0.2), strRef("ml")},
		{"no dose", "vacuna acaros", nil, nil},
		{"integer alone is not a dose", "vacuna 50", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, unit := extractDosage(tt.text)
			switch {
			case value == nil && tt.value == nil:
			case value == nil || tt.value == nil || *value != *tt.value:
				t.Fatalf("extractDosage(%q) value = %v, want %v", tt.text, value, tt.value)
			}
			assertStrPtr(t, "unit", unit, tt.unit)
		})
	}
}

func TestClassifyStage(t *testing.T) {
	tests := []struct {
		name string
		text string
		dose *float64
		want *string
	}{
		{"ordinal first dose", "vacuna 1era dosis", nil, strRef(StageInduction)},
		{"ordinal with space typo", "vacuna 3 era dosis", nil, strRef(StageInduction)},
		{"ordinal second", "2da dosis", nil, strRef(StageInduction)},
		{"word ordinal", "primera dosis", nil, strRef(StageInduction)},
		{"explicit induction", "inducción", nil, strRef(StageInduction)},
		{"induction wins over maintenance cue", "1era dosis mensual", nil, strRef(StageInduction)},
		{"monthly", "vacuna mensual", nil, strRef(StageMaintenance)},
		{"booster", "refuerzo", nil, strRef(StageMaintenance)},
		{"parenthesized fifty", "vacuna acaros (50)", nil, strRef(StageMaintenance)},
		{"trailing fifty", "vacuna acaros 50", nil, strRef(StageMaintenance)},
		{"mantencion fragment", "mantencion", nil, strRef(StageMaintenance)},
		{"half milliliter", "vacuna 0,5 ml", nil, strRef(StageMaintenance)},
		{"threshold below half", "vacuna", floatRef(0.3), strRef(StageInduction)},
		{"threshold at half", "vacuna", floatRef(0.5), strRef(StageMaintenance)},
		{"threshold above half", "vacuna", floatRef(1), strRef(StageMaintenance)},
		{"no cue no dose", "vacuna acaros", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStage(tt.text, tt.dose)
			assertStrPtr(t, "stage", got, tt.want)
		})
	}
}

func floatRef(v float64) *float64 { return &v }
