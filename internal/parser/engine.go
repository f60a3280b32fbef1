// Package parser derives structured billing and treatment metadata from the
// free-text titles and descriptions of clinic calendar events.
//
// The engine is a deterministic, ordered rule system over noisy Chilean
// Spanish shorthand: pattern tables feed an amount-extraction pipeline and
// four classifiers (category, attendance, dosage, treatment stage) whose
// results the orchestrator reconciles into one record. It is a pure
// text-to-struct transformation: no I/O, no state between calls, identical
// input always yields an identical record, and it is safe to call from any
// number of goroutines.
package parser

import "strings"

// roxairDefaultAmount is the fixed price of the Roxair service line, used
// when the text carries no explicit amount.
const roxairDefaultAmount = 150_000

// Metadata is the immutable result of parsing one calendar event. Nullable
// fields stay nil when the text gave no signal; that is a valid, fully-formed
// result, never an error.
type Metadata struct {
	Category        *string  `db:"category" json:"category"`
	AmountExpected  *int     `db:"amount_expected" json:"amount_expected"`
	AmountPaid      *int     `db:"amount_paid" json:"amount_paid"`
	Attended        *bool    `db:"attended" json:"attended"`
	DosageValue     *float64 `db:"dosage_value" json:"dosage_value"`
	DosageUnit      *string  `db:"dosage_unit" json:"dosage_unit"`
	TreatmentStage  *string  `db:"treatment_stage" json:"treatment_stage"`
	ControlIncluded bool     `db:"control_included" json:"control_included"`
	IsDomicilio     bool     `db:"is_domicilio" json:"is_domicilio"`
}

// Parse derives billing and treatment metadata from a calendar event's
// summary and description. Either field may be nil.
//
// Ignored (administrative) events still get attendance and amount fields
// computed; only the category is forced nil. Callers that want to skip them
// entirely should check IsIgnored first.
func Parse(summary, description *string) Metadata {
	sum := strings.ToLower(strings.TrimSpace(coerceText(summary)))
	text := strings.ToLower(strings.TrimSpace(coerceText(summary) + " " + coerceText(description)))

	acc := extractAmounts(text)
	refineAmounts(&acc, text)

	category := classifyCategory(sum, text)
	attended := detectAttendance(text)
	doseValue, doseUnit := extractDosage(text)
	stage := classifyStage(text, doseValue)

	md := Metadata{
		Category:        category,
		AmountExpected:  acc.expected,
		AmountPaid:      acc.paid,
		Attended:        attended,
		DosageValue:     doseValue,
		DosageUnit:      doseUnit,
		TreatmentStage:  stage,
		ControlIncluded: reControlKeyword.MatchString(text),
		IsDomicilio:     containsAny(text, domicilioPhrases),
	}

	// Dosage and stage only mean anything for subcutaneous treatment.
	if category == nil || *category != CategorySubcutaneous {
		md.DosageValue = nil
		md.DosageUnit = nil
		md.TreatmentStage = nil
	}

	if category != nil && *category == CategoryRoxair {
		if md.AmountExpected == nil {
			md.AmountExpected = intRef(roxairDefaultAmount)
		}
		if md.Attended == nil && containsAny(text, pickupPhrases) {
			md.Attended = boolRef(true)
		}
		// Roxair orders are usually settled on pickup: treat a confirmed
		// attendance or payment mention as paid when nothing explicit says
		// otherwise.
		likelyPaid := (md.Attended != nil && *md.Attended) || containsAny(text, moneyConfirmedPhrases)
		notAbsent := md.Attended == nil || *md.Attended
		if md.AmountPaid == nil && notAbsent && likelyPaid {
			md.AmountPaid = intRef(*md.AmountExpected)
		}
	}

	// Highest-priority rule, applied last: a no-show pays zero.
	if md.Attended != nil && !*md.Attended {
		md.AmountPaid = intRef(0)
	}

	return md
}

// IsIgnored reports whether the event summary matches the ignore list
// (administrative notices, reminders, "name y name" notes, holidays). Callers
// should check it before acting on Parse output: Parse nils the category for
// ignored events but still fills the remaining fields.
func IsIgnored(summary *string) bool {
	return isIgnoredText(strings.ToLower(strings.TrimSpace(coerceText(summary))))
}
