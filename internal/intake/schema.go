package intake

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity separates blocking problems from ones the applicant may acknowledge.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Value is one parsed field. Text holds the canonical form (aliases already rewritten),
// Raw the trimmed submission.
type Value struct {
	Raw     string `json:"raw"`
	Text    string `json:"text"`
	Number  int    `json:"number,omitempty"`
	Numeric bool   `json:"numeric,omitempty"`
}

func (v Value) String() string {
	if v.Numeric {
		return strconv.Itoa(v.Number)
	}
	return v.Text
}

// Values maps field keys to parsed values.
type Values map[string]Value

// Vars feeds message templates. Keys are referenced as {{key}}.
type Vars map[string]interface{}

// Parser turns raw text into a Value. A non-nil error is shown to the applicant as an Error.
type Parser func(raw string) (Value, error)

// Rule is a pure check over one parsed field and its siblings.
type Rule struct {
	Name     string
	Severity Severity
	Message  string
	Check    func(v Value, siblings Values) (bool, Vars)
}

// FieldSpec describes one item of a submission.
type FieldSpec struct {
	Key    string
	Prompt string
	Parse  Parser
	Rules  []Rule
}

// Finding is a failed rule, rendered for display.
type Finding struct {
	Field    string   `json:"field"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Schema is the declarative description of one applicant pathway.
type Schema struct {
	Name     string
	Title    string
	Emoji    string
	IDPrefix string
	Noun     string
	Example  string
	Fields   []FieldSpec
	Criteria []Criterion

	ApprovedHeader string
	RejectedHeader string
	ApprovedBody   string
}

// Prompts returns field prompts in submission order.
func (s *Schema) Prompts() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Prompt
	}
	return out
}

// Validate checks the schema for structural mistakes.
func (s *Schema) Validate() error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %q has no fields", s.Name)
	}
	if strings.TrimSpace(s.IDPrefix) == "" {
		return fmt.Errorf("schema %q has no id prefix", s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Key == "" || f.Prompt == "" {
			return fmt.Errorf("schema %q has a field without key or prompt", s.Name)
		}
		if seen[f.Key] {
			return fmt.Errorf("schema %q declares field %q twice", s.Name, f.Key)
		}
		seen[f.Key] = true
	}
	for _, c := range s.Criteria {
		if c.Met == nil {
			return fmt.Errorf("schema %q criterion %q has no predicate", s.Name, c.Label)
		}
	}
	return nil
}

// renderTemplate substitutes {{key}} placeholders and drops unknown ones.
// Substituted values are copied verbatim and never rescanned.
func renderTemplate(tmpl string, data Vars) string {
	var b strings.Builder
	rest := tmpl
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(rest[start+2:], "}}")
		if end == -1 {
			break
		}
		b.WriteString(rest[:start])
		key := rest[start+2 : start+2+end]
		if v, ok := data[key]; ok {
			b.WriteString(templateValue(v))
		}
		rest = rest[start+2+end+2:]
	}
	b.WriteString(rest)
	return b.String()
}

func templateValue(v interface{}) string {
	switch tv := v.(type) {
	case string:
		return tv
	case int:
		return strconv.Itoa(tv)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", tv)
	}
}
