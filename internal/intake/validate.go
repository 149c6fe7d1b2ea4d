package intake

import (
	"fmt"
	"strings"
)

// Submission is one message split into raw items.
type Submission []string

// Split breaks a message on commas and trims each item.
func Split(msg string) Submission {
	parts := strings.Split(msg, ",")
	out := make(Submission, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// CountMismatchError is returned when a submission has the wrong number of items.
type CountMismatchError struct {
	Expected int
	Received int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("expected %d items, received %d", e.Expected, e.Received)
}

// Report is the collect-all outcome of validating one submission.
type Report struct {
	Values   Values
	Errors   []Finding
	Warnings []Finding
}

func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ValidatedBundle is a submission that passed every Error rule.
type ValidatedBundle struct {
	Schema string `json:"schema"`
	Values Values `json:"values"`
}

// Get returns the value for key, or a zero Value.
func (b *ValidatedBundle) Get(key string) Value {
	if b == nil {
		return Value{}
	}
	return b.Values[key]
}

// Bundle promotes the report. It returns false while any Error is present.
func (r *Report) Bundle(schema *Schema) (*ValidatedBundle, bool) {
	if r.HasErrors() {
		return nil, false
	}
	values := make(Values, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return &ValidatedBundle{Schema: schema.Name, Values: values}, true
}

// Validate parses every field and evaluates every rule, in schema then rule order.
// Every field is parsed before any rule runs so rules can read siblings. Rules of a
// field whose parse failed are skipped.
func Validate(schema *Schema, items Submission) (*Report, error) {
	if len(items) != len(schema.Fields) {
		return nil, &CountMismatchError{Expected: len(schema.Fields), Received: len(items)}
	}

	report := &Report{Values: make(Values, len(schema.Fields))}
	parseErrs := make([]error, len(schema.Fields))

	for i, field := range schema.Fields {
		parse := field.Parse
		if parse == nil {
			parse = TextParser()
		}
		v, err := parse(items[i])
		report.Values[field.Key] = v
		parseErrs[i] = err
	}

	for i, field := range schema.Fields {
		if parseErrs[i] != nil {
			report.Errors = append(report.Errors, Finding{
				Field:    field.Key,
				Rule:     "parse",
				Severity: SeverityError,
				Message:  parseErrs[i].Error(),
			})
			continue
		}
		v := report.Values[field.Key]
		for _, rule := range field.Rules {
			ok, vars := rule.Check(v, report.Values)
			if ok {
				continue
			}
			data := Vars{"raw": v.Raw, "value": v.String()}
			for k, val := range vars {
				data[k] = val
			}
			f := Finding{
				Field:    field.Key,
				Rule:     rule.Name,
				Severity: rule.Severity,
				Message:  renderTemplate(rule.Message, data),
			}
			if rule.Severity == SeverityWarning {
				report.Warnings = append(report.Warnings, f)
			} else {
				report.Errors = append(report.Errors, f)
			}
		}
	}

	return report, nil
}
