package parser

// extractDosage pulls a dose value and unit out of the text. Shapes are tried
// in order: explicit number+unit, the fused Alxoid shorthand, then any
// standalone decimal (assumed milliliters). There is no default dose: when
// nothing matches, both returns are nil.
func extractDosage(text string) (*float64, *string) {
	if m := reDosageUnit.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok {
			return &v, strRef(m[2])
		}
	}
	if m := reAlxoidDose.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok {
			return &v, strRef("ml")
		}
	}
	if m := reStandaloneDecimal.FindString(text); m != "" {
		if v, ok := parseDecimal(m); ok {
			return &v, strRef("ml")
		}
	}
	return nil, nil
}
