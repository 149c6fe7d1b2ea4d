package intake

import (
	"fmt"

	"academy-assistant/internal/common/keyword"
	"academy-assistant/internal/common/logger"
)

// Outcome labels what the last Advance call did.
type Outcome string

const (
	OutcomeNone          Outcome = ""
	OutcomePrompted      Outcome = "prompted"
	OutcomeCountMismatch Outcome = "count_mismatch"
	OutcomeInvalid       Outcome = "invalid"
	OutcomeWarnings      Outcome = "warnings"
	OutcomeRevise        Outcome = "revise"
	OutcomeReask         Outcome = "reask"
	OutcomeAccepted      Outcome = "accepted"
	OutcomeRejected      Outcome = "rejected"
	OutcomeUnexpected    Outcome = "unexpected_state"
)

var (
	confirmYes = keyword.NewSet("yes", "y", "proceed", "continue", "satisfied", "ok")
	confirmNo  = keyword.NewSet("no", "n", "revise", "adjust", "change", "correct")
)

// Session drives one applicant through a schema. It is not safe for concurrent use;
// callers serialize Advance per session.
type Session struct {
	schema    *Schema
	evaluator *Evaluator
	logger    logger.Logger

	stage   Stage
	pending *ValidatedBundle
	verdict *Verdict
	report  *Report
	outcome Outcome
}

// NewSession binds a schema and evaluator. The session starts Idle.
func NewSession(schema *Schema, evaluator *Evaluator, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Session{
		schema:    schema,
		evaluator: evaluator,
		logger:    log.With(map[string]interface{}{"schema": schema.Name}),
	}
}

func (s *Session) Schema() *Schema           { return s.schema }
func (s *Session) Stage() Stage              { return s.stage }
func (s *Session) Pending() *ValidatedBundle { return s.pending }
func (s *Session) LastOutcome() Outcome      { return s.outcome }

// Verdict is set once the session reaches Accepted or Rejected.
func (s *Session) Verdict() *Verdict { return s.verdict }

// LastReport is the validation report of the most recent well-formed submission.
func (s *Session) LastReport() *Report { return s.report }

// Reset returns the session to Idle and drops all submission state.
func (s *Session) Reset() {
	s.stage = StageIdle
	s.pending = nil
	s.verdict = nil
	s.report = nil
	s.outcome = OutcomeNone
}

// Start emits the prompt list and waits for the applicant's submission.
func (s *Session) Start() string {
	s.Reset()
	s.stage = StagePromptingFields
	msg := renderStart(s.schema)
	s.stage = StageAwaitingInput
	s.outcome = OutcomePrompted
	s.logger.Debug("intake started", nil)
	return msg
}

// Advance consumes one user message and always returns a display string.
func (s *Session) Advance(msg string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("intake advance panicked", map[string]interface{}{
				"stage": s.stage.String(),
				"panic": fmt.Sprint(r),
			})
			s.outcome = OutcomeUnexpected
			reply = UnexpectedStateMessage
		}
	}()

	switch s.stage {
	case StageAwaitingInput:
		return s.handleSubmission(msg)
	case StageAwaitingWarningConfirmation:
		return s.handleConfirmation(msg)
	default:
		s.logger.Warn("advance called outside intake flow", map[string]interface{}{"stage": s.stage.String()})
		s.outcome = OutcomeUnexpected
		return UnexpectedStateMessage
	}
}

func (s *Session) handleSubmission(msg string) string {
	items := Split(msg)
	report, err := Validate(s.schema, items)
	if err != nil {
		s.outcome = OutcomeCountMismatch
		s.logger.Info("submission rejected on item count", map[string]interface{}{
			"expected": len(s.schema.Fields),
			"received": len(items),
		})
		return renderCountMismatch(s.schema, items)
	}
	s.report = report

	if report.HasErrors() {
		s.outcome = OutcomeInvalid
		s.logger.Info("submission has validation errors", map[string]interface{}{
			"errors":   len(report.Errors),
			"warnings": len(report.Warnings),
		})
		return renderErrors(report)
	}

	bundle, _ := report.Bundle(s.schema)
	if report.HasWarnings() {
		s.pending = bundle
		s.stage = StageAwaitingWarningConfirmation
		s.outcome = OutcomeWarnings
		return renderWarnings(report)
	}

	return s.commit(bundle)
}

func (s *Session) handleConfirmation(msg string) string {
	switch {
	case confirmYes.Match(msg):
		bundle := s.pending
		s.pending = nil
		if bundle == nil {
			s.stage = StageIdle
			s.outcome = OutcomeUnexpected
			return UnexpectedStateMessage
		}
		return s.commit(bundle)
	case confirmNo.Match(msg):
		s.pending = nil
		s.stage = StageAwaitingInput
		s.outcome = OutcomeRevise
		return renderRevise(s.schema)
	default:
		s.outcome = OutcomeReask
		return reaskMessage
	}
}

func (s *Session) commit(bundle *ValidatedBundle) string {
	verdict := s.evaluator.Evaluate(s.schema, bundle)
	s.verdict = &verdict
	s.pending = nil
	if verdict.Accepted {
		s.stage = StageAccepted
		s.outcome = OutcomeAccepted
	} else {
		s.stage = StageRejected
		s.outcome = OutcomeRejected
	}
	s.logger.Info("eligibility evaluated", map[string]interface{}{
		"accepted": verdict.Accepted,
		"talentId": verdict.TalentID,
		"reasons":  len(verdict.Reasons),
	})
	return verdict.Message
}

// Snapshot is the serializable state of a session.
type Snapshot struct {
	Schema  string           `json:"schema"`
	Stage   string           `json:"stage"`
	Pending *ValidatedBundle `json:"pending,omitempty"`
	Verdict *Verdict         `json:"verdict,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Schema:  s.schema.Name,
		Stage:   s.stage.String(),
		Pending: s.pending,
		Verdict: s.verdict,
	}
}

// Restore rebuilds a session from a snapshot taken against the same schema.
func Restore(schema *Schema, evaluator *Evaluator, snap Snapshot, log logger.Logger) (*Session, error) {
	if snap.Schema != schema.Name {
		return nil, fmt.Errorf("snapshot schema %q does not match %q", snap.Schema, schema.Name)
	}
	stage, ok := ParseStage(snap.Stage)
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", snap.Stage)
	}
	if stage == StageAwaitingWarningConfirmation && snap.Pending == nil {
		return nil, fmt.Errorf("stage %s requires a pending bundle", stage)
	}

	s := NewSession(schema, evaluator, log)
	s.stage = stage
	s.pending = snap.Pending
	s.verdict = snap.Verdict
	return s, nil
}
