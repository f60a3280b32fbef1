package parser

import "testing"

func TestExtractAmounts(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *int
		paid     *int
	}{
		{"slash pair", "vacuna acaros (25/50)", intRef(50000), intRef(25000)},
		{"slash pair full amounts", "vacuna (25.000/50.000)", intRef(50000), intRef(25000)},
		{"date with slashes is not a pair", "control (12/03/2024)", nil, nil},
		{"parenthetical expected", "vacuna acaros (50)", intRef(50000), nil},
		{"parenthetical with paid keyword", "consulta (pagado 45)", intRef(45000), intRef(45000)},
		{"parenthetical strips dash date", "vacuna (12-03 45)", intRef(45000), nil},
		{"typo paren shape keeps last two digits", "consulta m45)", intRef(45000), nil},
		{"unit adjacent mil", "dosis 0,3 ml 30 mil", intRef(30000), nil},
		{"product keyword shorthand", "alxoid 45", intRef(45000), nil},
		{"context keyword shorthand", "test ambiental 30", intRef(30000), nil},
		{"trailing number", "consulta dra perez 40", intRef(40000), nil},
		{"trailing four digit year ignored", "consulta enero 2024", nil, nil},
		{"explicit pagado", "vacuna (50) pagado 25", intRef(50000), intRef(25000)},
		{"pagado overwrites slash pair paid", "vacuna (25/50) pagado 30", intRef(50000), intRef(30000)},
		{"pagado backfills expected", "pagado 35", intRef(35000), intRef(35000)},
		{"no cost marker", "control s/c", intRef(0), intRef(0)},
		{"no cost loses to explicit amount", "vacuna (50) s/c", intRef(50000), nil},
		{"phone number never an amount", "consulta 987654321", nil, nil},
		{"nothing", "consulta nueva", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := extractAmounts(tt.text)
			assertIntPtr(t, "expected", acc.expected, tt.expected)
			assertIntPtr(t, "paid", acc.paid, tt.paid)
		})
	}
}

func TestExtractAmountsFirstMatchWins(t *testing.T) {
	// The slash pair settles both fields; the later parenthetical and
	// trailing strategies must not overwrite them.
	acc := extractAmounts("vacuna (25/50) control (80) 90")
	assertIntPtr(t, "expected", acc.expected, intRef(50000))
	assertIntPtr(t, "paid", acc.paid, intRef(25000))
}

func TestRefineAmounts(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		in       amountAccumulator
		expected *int
		paid     *int
	}{
		{
			"no show forces zero paid",
			"vacuna (25/50) no vino",
			amountAccumulator{expected: intRef(50000), paid: intRef(25000)},
			intRef(50000), intRef(0),
		},
		{
			"no show beats pagado",
			"pagado 25 no asistio",
			amountAccumulator{expected: intRef(25000), paid: intRef(25000)},
			intRef(25000), intRef(0),
		},
		{
			"pending clears premature paid",
			"vacuna pagado 25 por confirmar",
			amountAccumulator{expected: intRef(25000), paid: intRef(25000)},
			intRef(25000), nil,
		},
		{
			"confirmed defaults paid to expected",
			"vacuna (50) transferencia",
			amountAccumulator{expected: intRef(50000)},
			intRef(50000), intRef(50000),
		},
		{
			"confirmed leaves settled paid alone",
			"vacuna (25/50) transferencia",
			amountAccumulator{expected: intRef(50000), paid: intRef(25000)},
			intRef(50000), intRef(25000),
		},
		{
			"domicilio defaults paid to expected",
			"vacuna (50) a domicilio",
			amountAccumulator{expected: intRef(50000)},
			intRef(50000), intRef(50000),
		},
		{
			"no signal leaves accumulator alone",
			"vacuna (50)",
			amountAccumulator{expected: intRef(50000)},
			intRef(50000), nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := tt.in
			refineAmounts(&acc, tt.text)
			assertIntPtr(t, "expected", acc.expected, tt.expected)
			assertIntPtr(t, "paid", acc.paid, tt.paid)
		})
	}
}

func assertIntPtr(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, fmtIntPtr(got), fmtIntPtr(want))
	case *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}

func fmtIntPtr(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
