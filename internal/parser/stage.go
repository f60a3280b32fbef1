package parser

// classifyStage resolves the immunotherapy stage. Explicit induction phrasing
// (ordinal dose mentions, with their usual typos) wins outright, even over
// text that also carries a maintenance cue. Explicit maintenance phrasing
// comes next. The numeric dose threshold is a last resort and only applies
// when a dose was actually extracted: no dose and no phrase means nil.
func classifyStage(text string, dose *float64) *string {
	if reInductionCue.MatchString(text) {
		return strRef(StageInduction)
	}
	if reMaintenanceCue.MatchString(text) {
		return strRef(StageMaintenance)
	}
	if dose != nil {
		if *dose < 0.5 {
			return strRef(StageInduction)
		}
		return strRef(StageMaintenance)
	}
	return nil
}
