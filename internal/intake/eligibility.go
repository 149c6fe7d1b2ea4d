package intake

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Criterion is one eligibility condition. A failed criterion renders as
// "<Label>: <Required> (<Phrase> <actual>)".
type Criterion struct {
	Key      string
	Label    string
	Required string
	Phrase   string
	Met      func(Values) bool
}

func (c Criterion) reason(values Values) string {
	actual := "N/A"
	if v, ok := values[c.Key]; ok && v.String() != "" {
		actual = v.String()
	}
	return fmt.Sprintf("%s: %s (%s %s)", c.Label, c.Required, c.Phrase, actual)
}

// Verdict is the outcome of an evaluation.
type Verdict struct {
	Accepted  bool      `json:"accepted"`
	Candidate string    `json:"candidate"`
	Reasons   []string  `json:"reasons,omitempty"`
	TalentID  string    `json:"talentId,omitempty"`
	Link      string    `json:"link,omitempty"`
	Message   string    `json:"message"`
	DecidedAt time.Time `json:"decidedAt"`
}

// IDGenerator issues talent identifiers.
type IDGenerator interface {
	Next(prefix string) string
}

// SequenceIDs issues "<prefix>-<n>" where n starts from the current unix second and
// strictly increases across calls, even within the same second.
type SequenceIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewSequenceIDs(now func() time.Time) *SequenceIDs {
	if now == nil {
		now = time.Now
	}
	return &SequenceIDs{now: now}
}

func (s *SequenceIDs) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.now().Unix()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return fmt.Sprintf("%s-%d", prefix, n)
}

// Evaluator applies a schema's criteria to a validated bundle.
type Evaluator struct {
	link string
	ids  IDGenerator
	now  func() time.Time
}

// NewEvaluator binds the next-step link, inserted verbatim into acceptance messages.
func NewEvaluator(link string, ids IDGenerator) *Evaluator {
	if ids == nil {
		ids = NewSequenceIDs(nil)
	}
	return &Evaluator{link: link, ids: ids, now: time.Now}
}

// Link returns the configured next-step URL.
func (e *Evaluator) Link() string {
	return e.link
}

// Evaluate checks every criterion; unmet ones are listed in schema order.
func (e *Evaluator) Evaluate(schema *Schema, bundle *ValidatedBundle) Verdict {
	candidate := bundle.Get("name").String()
	if candidate == "" {
		candidate = schema.Noun
	}

	var reasons []string
	for _, c := range schema.Criteria {
		if !c.Met(bundle.Values) {
			reasons = append(reasons, c.reason(bundle.Values))
		}
	}

	v := Verdict{Candidate: candidate, DecidedAt: e.now().UTC()}
	if len(reasons) > 0 {
		v.Reasons = reasons
		v.Message = fmt.Sprintf("**%s**\nSorry, %s. You do not meet our core eligibility requirements: %s.",
			schema.RejectedHeader, candidate, strings.Join(reasons, ", "))
		return v
	}

	v.Accepted = true
	v.TalentID = e.ids.Next(schema.IDPrefix)
	v.Link = e.link
	v.Message = fmt.Sprintf("**%s**\n**Candidate: %s (ID: %s)**\n\n**Next Steps:** %s\n[Complete Your Application Form](%s)",
		schema.ApprovedHeader, candidate, v.TalentID, schema.ApprovedBody, e.link)
	return v
}
