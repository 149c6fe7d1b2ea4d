package intake

// Stage is the position of a session within the intake flow.
type Stage int

const (
	StageIdle Stage = iota
	StagePromptingFields
	StageAwaitingInput
	StageAwaitingWarningConfirmation
	StageAccepted
	StageRejected
)

var stageNames = map[Stage]string{
	StageIdle:                        "idle",
	StagePromptingFields:             "prompting_fields",
	StageAwaitingInput:               "awaiting_input",
	StageAwaitingWarningConfirmation: "awaiting_warning_confirmation",
	StageAccepted:                    "accepted",
	StageRejected:                    "rejected",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStage is the inverse of String. Unknown names map to StageIdle.
func ParseStage(name string) (Stage, bool) {
	for s, n := range stageNames {
		if n == name {
			return s, true
		}
	}
	return StageIdle, false
}

// Terminal reports whether the stage ends a submission.
func (s Stage) Terminal() bool {
	return s == StageAccepted || s == StageRejected
}

// Active reports whether the session is collecting or confirming input.
func (s Stage) Active() bool {
	return s == StagePromptingFields || s == StageAwaitingInput || s == StageAwaitingWarningConfirmation
}
