package parser

// detectAttendance returns the tri-state attendance signal: false for an
// explicit no-show, true for an explicit confirmation, nil when the text says
// nothing either way. No-show phrases are checked first so that "no vino"
// never reads as attended through its "vino" substring.
func detectAttendance(text string) *bool {
	if containsAny(text, notAttendedPhrases) {
		return boolRef(false)
	}
	if containsAny(text, attendedPhrases) {
		return boolRef(true)
	}
	return nil
}

func boolRef(b bool) *bool { return &b }
