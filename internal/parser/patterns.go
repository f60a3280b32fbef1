package parser

import (
	"regexp"
	"strings"
)

// Service categories derivable from calendar text.
const (
	CategorySubcutaneous = "Tratamiento subcutáneo"
	CategoryTests        = "Test y exámenes"
	CategoryConsulta     = "Consulta médica"
	CategoryControl      = "Control médico"
	CategoryLicencia     = "Licencia médica"
	CategoryRoxair       = "Roxair"
	CategoryInyeccion    = "Servicio de inyección"
)

// Immunotherapy treatment stages.
const (
	StageInduction   = "Inducción"
	StageMaintenance = "Mantención"
)

// All tables below assume lowercased, NFC-normalized input. They are read-only
// process-wide constants; nothing may mutate them after init.

// categoryRule pairs a category with the pattern that detects it. Rules are
// evaluated in declaration order and the first match wins, so the order here
// is behavior: reordering changes classification results.
type categoryRule struct {
	category string
	re       *regexp.Regexp
}

// reStandaloneDecimal matches a bare decimal number ("0,3", "0.5"). Clinic
// staff write unlabeled subcutaneous doses this way, so it doubles as the
// implicit subcutaneous cue and the inferred-ml dosage shape.
var reStandaloneDecimal = regexp.MustCompile(`\b\d+[.,]\d+\b`)

// categoryRules is the strict priority chain for category resolution.
// Servicio de inyección is checked before Tratamiento subcutáneo on purpose:
// named take-home biologics must not fall through to the vaccine keywords.
var categoryRules = []categoryRule{
	{CategoryTests, regexp.MustCompile(`\btests?\b|examen|ex[aá]men|prick|\bige\b|espirometr|parche`)},
	{CategoryInyeccion, regexp.MustCompile(`xolair|omalizumab|dupixent|dupilumab|nucala|mepolizumab|inyecci[oó]n`)},
	{CategorySubcutaneous, regexp.MustCompile(`subcut[aá]ne|vacuna|[aá]caro|alxoid|oralair|inmunoterapia|\bdosis\b|mantenci[oó]n|inducci[oó]n`)},
	{CategoryRoxair, regexp.MustCompile(`roxair`)},
	{CategoryLicencia, regexp.MustCompile(`licencia`)},
	{CategoryControl, regexp.MustCompile(`\bcontrol\b`)},
	{CategoryConsulta, regexp.MustCompile(`consulta|hora m[eé]dica`)},
	{CategorySubcutaneous, reStandaloneDecimal},
}

// ignorePatterns mark events that carry no billable service: administrative
// notices, reminders, "name y name" staff pairing notes, and holidays.
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[a-záéíóúñ]+\s+y\s+[a-záéíóúñ]+\s*$`),
	regexp.MustCompile(`reuni[oó]n|recordatorio|recordar|no agendar|bloquea|feriado|vacaciones|cumplea[ñn]os|congreso|capacitaci[oó]n|administrativ`),
}

// Attendance phrase tables. Not-attended phrases are checked first, so "no
// vino" never trips over the bare "vino" in the attended table.
var (
	notAttendedPhrases = []string{
		"no vino", "no asistió", "no asistio",
		"no se presentó", "no se presento",
		"no llegó", "no llego",
		"no show", "inasistencia", "faltó", "falto",
	}

	attendedPhrases = []string{
		"asistió", "asistio", "vino",
		"atendido", "atendida",
		"llegó", "llego",
		"realizado", "realizada",
	}

	pendingConfirmationPhrases = []string{
		"por confirmar", "sin confirmar", "x confirmar",
		"pendiente", "por pagar",
	}
)

// moneyConfirmedPhrases are Chilean payment shorthand; "cancelado" means paid
// here, not cancelled.
var moneyConfirmedPhrases = []string{
	"pagado", "pagó", "pago",
	"transferencia", "transf",
	"abonado", "abonó", "abono",
	"cancelado", "canceló",
	"depósito", "deposito", "efectivo",
}

var (
	domicilioPhrases = []string{"domicilio", "despacho", "delivery"}

	// pickupPhrases flag a Roxair order ready at reception, which implies the
	// patient came (or will come) for it.
	pickupPhrases = []string{"listo para retiro", "para retirar", "retirado", "retira", "retiro"}

	noCostMarkers = []string{"s/c", "sin costo", "sin cobro", "gratis"}
)

// reControlKeyword feeds the control_included flag, independent of category.
var reControlKeyword = regexp.MustCompile(`\bcontrol\b`)

// Amount extraction shapes, in strategy order.
var (
	// "(paid/expected)" pairs. Both sides must be slash-free so that full
	// dates like (12/03/2024) never parse as a pair.
	reSlashPair = regexp.MustCompile(`\(([^/()]+)/([^/()]+)\)`)

	reParenGroup = regexp.MustCompile(`\(([^()]*)\)`)

	// Day-month(-year) fragments stripped out of parentheticals before the
	// remainder is normalized as an amount.
	reDateFragment = regexp.MustCompile(`\b\d{1,2}[-.]\d{1,2}(?:[-.]\d{2,4})?\b`)

	// Typo shape: an opening paren mistyped as (or fused with) a letter, e.g.
	// "consulta m45)". Only the last two digits of the run are the amount.
	reTypoParen = regexp.MustCompile(`[a-záéíóúñ](\d{2,})\)`)

	// A "N mil" fragment trailing a dosage unit, e.g. "0,3 ml 30 mil".
	reUnitMil = regexp.MustCompile(`(?:ml|cc|mg)\D{0,6}?(\d{1,3}\s*mil)\b`)

	// 2-3 digit shorthand after a product token. The run must not continue
	// with a digit or a date/decimal separator, so "12/03/2024" and "25.000"
	// never yield partial matches.
	reProductAmount = regexp.MustCompile(`(?:alxoid|oralair|vacunas?(?:\s+de)?\s+[aá]caros?|[aá]caros?)\D{0,8}?\b(\d{2,3})(?:[^\d/.\-]|$)`)

	// 2-3 digit shorthand after a generic service keyword.
	reContextAmount = regexp.MustCompile(`(?:\btests?\b|examen|ambient\w*|consulta|control|parche)\D{0,8}?\b(\d{2,3})(?:[^\d/.\-]|$)`)

	// 2-3 digit shorthand at the very end of the text.
	reTrailingAmount = regexp.MustCompile(`\b(\d{2,3})\s*$`)

	// Explicit "pagado <number>" with optional $, separators and "mil".
	rePaidAmount = regexp.MustCompile(`pagad[oa]s?\s*:?\s*\$?\s*(\d[\d.,]*(?:\s*mil)?)`)
)

// Dosage shapes, in extraction order.
var (
	// Number plus explicit unit; \b also matches before "(" in "0,5ml(".
	reDosageUnit = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(ml|cc|mg)\b`)

	// Fused product+dose shorthand used for the Alxoid line: "alxoid0,3".
	reAlxoidDose = regexp.MustCompile(`alxoid(\d+[.,]\d+)`)
)

// Treatment stage cues. Explicit induction phrasing beats everything else,
// including text that would otherwise read as maintenance.
var (
	reInductionCue = regexp.MustCompile(
		`\b[1-5]\s*(?:°|era|ra|da|ta|er|a)?\s*dosis\b` +
			`|\b(?:primera|segunda|tercera|cuarta|quinta)\s+dosis\b` +
			`|inducci[oó]n`)

	reMaintenanceCue = regexp.MustCompile(
		`mensual|refuerzo|mantenci|manutenci` +
			`|\(50\)|\b50\s*$` +
			`|\b0[.,]5\b|medio\s+ml`)
)

// containsAny reports whether text contains any of the given phrases.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// matchesAny reports whether text matches any of the given patterns.
func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
