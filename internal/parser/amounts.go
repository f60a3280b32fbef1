package parser

import "strings"

// amountAccumulator threads through the extraction strategies. Within the
// pipeline a field, once set, is never overwritten by a later strategy
// (except the explicit "pagado" strategy, which is documented to win);
// only refineAmounts may rewrite settled values afterwards.
type amountAccumulator struct {
	expected *int
	paid     *int
}

// amountStrategies run in fixed order. The order is behavior: earlier
// strategies are more specific and later ones are fallbacks that defer to
// already-set fields.
var amountStrategies = []func(string, *amountAccumulator){
	amountsFromSlashPairs,
	amountsFromParentheticals,
	amountsFromTypoShapes,
	amountsFromProductKeywords,
	amountsFromContextKeywords,
	amountsFromTrailingNumber,
	amountsFromPaidKeyword,
}

// extractAmounts runs the full extraction pipeline over the concatenated
// event text and returns the resulting accumulator.
func extractAmounts(text string) amountAccumulator {
	var acc amountAccumulator
	for _, strategy := range amountStrategies {
		strategy(text, &acc)
	}

	// A no-cost marker only applies when no strategy produced anything:
	// an explicit amount always beats "s/c" scribbled elsewhere.
	if acc.expected == nil && acc.paid == nil && containsAny(text, noCostMarkers) {
		acc.expected = intRef(0)
		acc.paid = intRef(0)
	}
	return acc
}

// amountsFromSlashPairs handles "(paid/expected)" pairs. Each side is
// normalized independently and the first valid value wins per field.
func amountsFromSlashPairs(text string, acc *amountAccumulator) {
	for _, m := range reSlashPair.FindAllStringSubmatch(text, -1) {
		if v, ok := NormalizeAmount(m[1]); ok && acc.paid == nil {
			acc.paid = intRef(v)
		}
		if v, ok := NormalizeAmount(m[2]); ok && acc.expected == nil {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromParentheticals inspects every parenthesized group. Slash-shaped
// groups are skipped (handled above, or dates), date fragments are stripped,
// and a group carrying a paid keyword feeds the paid side.
func amountsFromParentheticals(text string, acc *amountAccumulator) {
	for _, m := range reParenGroup.FindAllStringSubmatch(text, -1) {
		group := m[1]
		if strings.Contains(group, "/") {
			continue
		}
		cleaned := reDateFragment.ReplaceAllString(group, "")
		v, ok := NormalizeAmount(cleaned)
		if !ok {
			continue
		}
		if containsAny(group, moneyConfirmedPhrases) {
			if acc.paid == nil {
				acc.paid = intRef(v)
			}
			if acc.expected == nil {
				acc.expected = intRef(v)
			}
			continue
		}
		if acc.expected == nil {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromTypoShapes covers two recurring typos: an opening paren mistyped
// as a letter ("m45)" -> 45) and a "N mil" fragment stuck to a dosage unit.
func amountsFromTypoShapes(text string, acc *amountAccumulator) {
	if acc.expected != nil {
		return
	}
	if m := reTypoParen.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if v, ok := NormalizeAmount(digits[len(digits)-2:]); ok {
			acc.expected = intRef(v)
			return
		}
	}
	if m := reUnitMil.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizeAmount(m[1]); ok {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromProductKeywords picks up 2-3 digit shorthand right after a
// product token (Alxoid, Oralair, mite-vaccine wording).
func amountsFromProductKeywords(text string, acc *amountAccumulator) {
	if acc.expected != nil {
		return
	}
	if m := reProductAmount.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizeAmount(m[1]); ok {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromContextKeywords does the same for generic service keywords
// (test, examen, ambiental, consulta, control, parche).
func amountsFromContextKeywords(text string, acc *amountAccumulator) {
	if acc.expected != nil {
		return
	}
	if m := reContextAmount.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizeAmount(m[1]); ok {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromTrailingNumber accepts a 2-3 digit number at the very end of the
// text as the expected amount.
func amountsFromTrailingNumber(text string, acc *amountAccumulator) {
	if acc.expected != nil {
		return
	}
	if m := reTrailingAmount.FindStringSubmatch(text); m != nil {
		if v, ok := NormalizeAmount(m[1]); ok {
			acc.expected = intRef(v)
		}
	}
}

// amountsFromPaidKeyword handles explicit "pagado <number>" mentions. Unlike
// every other strategy it may overwrite an already-set paid amount: an
// explicit statement of payment is authoritative within the pipeline.
func amountsFromPaidKeyword(text string, acc *amountAccumulator) {
	for _, m := range rePaidAmount.FindAllStringSubmatch(text, -1) {
		if v, ok := NormalizeAmount(m[1]); ok {
			acc.paid = intRef(v)
			if acc.expected == nil {
				acc.expected = intRef(v)
			}
		}
	}
}

// refineAmounts corrects the accumulator using attendance and confirmation
// signals. The four rules are mutually exclusive and ordered by priority;
// only the first whose phrase is present applies.
func refineAmounts(acc *amountAccumulator, text string) {
	switch {
	case containsAny(text, notAttendedPhrases):
		// A no-show pays nothing, whatever the text claimed elsewhere.
		acc.paid = intRef(0)
	case containsAny(text, pendingConfirmationPhrases):
		// Money cannot be confirmed paid while explicitly pending.
		acc.paid = nil
	case containsAny(text, moneyConfirmedPhrases):
		if acc.expected != nil && acc.paid == nil {
			acc.paid = intRef(*acc.expected)
		}
	case containsAny(text, domicilioPhrases):
		// Home deliveries are paid up front by convention.
		if acc.expected != nil && (acc.paid == nil || *acc.paid == 0) {
			acc.paid = intRef(*acc.expected)
		}
	}
}

func intRef(v int) *int { return &v }
