package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"academy-assistant/internal/common/keyword"
)

// TextParser keeps the trimmed text as is.
func TextParser() Parser {
	return func(raw string) (Value, error) {
		raw = strings.TrimSpace(raw)
		return Value{Raw: raw, Text: raw}, nil
	}
}

// IntParser requires a base-10 integer. msg may reference {{raw}}.
func IntParser(msg string) Parser {
	return func(raw string) (Value, error) {
		raw = strings.TrimSpace(raw)
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{Raw: raw, Text: raw}, fmt.Errorf("%s", renderTemplate(msg, Vars{"raw": raw}))
		}
		return Value{Raw: raw, Text: raw, Number: n, Numeric: true}, nil
	}
}

// Category is a closed set of canonical codes plus an alias table.
type Category struct {
	Canonical       []string
	Aliases         map[string]string
	MinLength       int
	UnknownMessage  string
	TooShortMessage string
}

func categoryKey(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// Normalize maps raw onto its canonical code. The second result is false when
// raw is neither a canonical code nor a known alias; the key is returned unchanged.
func (c *Category) Normalize(raw string) (string, bool) {
	key := categoryKey(raw)
	if canonical, ok := c.Aliases[key]; ok {
		return canonical, true
	}
	for _, code := range c.Canonical {
		if key == code {
			return code, true
		}
	}
	return key, false
}

// Parser rewrites aliases to canonical codes and rejects anything unmatched.
func (c *Category) Parser() Parser {
	return func(raw string) (Value, error) {
		raw = strings.TrimSpace(raw)
		code, ok := c.Normalize(raw)
		if ok {
			return Value{Raw: raw, Text: code}, nil
		}
		if utf8.RuneCountInString(code) < c.MinLength {
			return Value{Raw: raw, Text: raw}, fmt.Errorf("%s", renderTemplate(c.TooShortMessage, Vars{"raw": raw}))
		}
		return Value{Raw: raw, Text: raw}, fmt.Errorf("%s", renderTemplate(c.UnknownMessage, Vars{"raw": raw}))
	}
}

// MinLength fails when the trimmed text is shorter than n characters.
func MinLength(n int, severity Severity, msg string) Rule {
	return Rule{
		Name:     "min_length",
		Severity: severity,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			return utf8.RuneCountInString(v.Raw) >= n, Vars{"min": n}
		},
	}
}

// CharClass requires the whole text to match pattern. Texts shorter than minLen are
// left to the length rule.
func CharClass(pattern *regexp.Regexp, minLen int, msg string) Rule {
	return Rule{
		Name:     "char_class",
		Severity: SeverityError,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			if utf8.RuneCountInString(v.Raw) < minLen {
				return true, nil
			}
			return pattern.MatchString(v.Raw), nil
		},
	}
}

// NumericBounds describes a hard range with optional soft warning bands inside it.
// A soft warning only fires when the value is inside the hard range.
type NumericBounds struct {
	Min       *int
	Max       *int
	WarnBelow *int
	WarnAbove *int

	MinMessage       string
	MaxMessage       string
	WarnBelowMessage string
	WarnAboveMessage string
}

// Bound is a convenience for optional thresholds.
func Bound(n int) *int {
	return &n
}

func (b NumericBounds) withinHard(n int) bool {
	if b.Min != nil && n < *b.Min {
		return false
	}
	if b.Max != nil && n > *b.Max {
		return false
	}
	return true
}

// Rules expands the bounds into individual rules.
func (b NumericBounds) Rules() []Rule {
	var rules []Rule
	vars := func(v Value) Vars {
		out := Vars{"n": v.Number}
		if b.Min != nil {
			out["min"] = *b.Min
		}
		if b.Max != nil {
			out["max"] = *b.Max
		}
		if b.WarnBelow != nil {
			out["warn_below"] = *b.WarnBelow
		}
		if b.WarnAbove != nil {
			out["warn_above"] = *b.WarnAbove
		}
		return out
	}

	if b.Min != nil {
		rules = append(rules, Rule{
			Name: "min", Severity: SeverityError, Message: b.MinMessage,
			Check: func(v Value, _ Values) (bool, Vars) { return v.Number >= *b.Min, vars(v) },
		})
	}
	if b.Max != nil {
		rules = append(rules, Rule{
			Name: "max", Severity: SeverityError, Message: b.MaxMessage,
			Check: func(v Value, _ Values) (bool, Vars) { return v.Number <= *b.Max, vars(v) },
		})
	}
	if b.WarnAbove != nil {
		rules = append(rules, Rule{
			Name: "warn_above", Severity: SeverityWarning, Message: b.WarnAboveMessage,
			Check: func(v Value, _ Values) (bool, Vars) {
				return !b.withinHard(v.Number) || v.Number <= *b.WarnAbove, vars(v)
			},
		})
	}
	if b.WarnBelow != nil {
		rules = append(rules, Rule{
			Name: "warn_below", Severity: SeverityWarning, Message: b.WarnBelowMessage,
			Check: func(v Value, _ Values) (bool, Vars) {
				return !b.withinHard(v.Number) || v.Number >= *b.WarnBelow, vars(v)
			},
		})
	}
	return rules
}

// Keywords requires one keyword of set to appear in the text.
func Keywords(set *keyword.Set, severity Severity, msg string) Rule {
	return Rule{
		Name:     "keywords",
		Severity: severity,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			return set.Match(v.Raw), nil
		},
	}
}

// Pattern requires pattern to occur somewhere in the lowercased text.
func Pattern(name string, pattern *regexp.Regexp, severity Severity, msg string) Rule {
	return Rule{
		Name:     name,
		Severity: severity,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			return pattern.MatchString(strings.ToLower(v.Raw)), nil
		},
	}
}

// LabeledNumber extracts the first capture group of pattern and requires it to lie in
// [lo, hi]. A missing label passes; pair it with a Pattern rule to flag absence.
func LabeledNumber(name string, pattern *regexp.Regexp, lo, hi int, msg string) Rule {
	return Rule{
		Name:     name,
		Severity: SeverityError,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			m := pattern.FindStringSubmatch(strings.ToLower(v.Raw))
			if len(m) < 2 {
				return true, nil
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return false, Vars{"n": m[1], "min": lo, "max": hi}
			}
			return n >= lo && n <= hi, Vars{"n": n, "min": lo, "max": hi}
		},
	}
}

// ConditionalLink covers "Yes/No, and a link if Yes" answers. A URL on its own
// counts as an affirmative answer that already carries its link.
type ConditionalLink struct {
	Yes *keyword.Set
	No  *keyword.Set
	URL *regexp.Regexp

	MissingLinkMessage string
	UnclearMessage     string
}

func (c ConditionalLink) Rules() []Rule {
	hasURL := func(v Value) bool { return c.URL.MatchString(strings.ToLower(v.Raw)) }
	return []Rule{
		{
			Name: "link_required", Severity: SeverityWarning, Message: c.MissingLinkMessage,
			Check: func(v Value, _ Values) (bool, Vars) {
				return !c.Yes.Match(v.Raw) || hasURL(v), nil
			},
		},
		{
			Name: "clear_answer", Severity: SeverityWarning, Message: c.UnclearMessage,
			Check: func(v Value, _ Values) (bool, Vars) {
				return c.Yes.Match(v.Raw) || c.No.Match(v.Raw) || hasURL(v), nil
			},
		},
	}
}

// Gate requires an affirmative answer. There is no warning tier.
func Gate(yes *keyword.Set, msg string) Rule {
	return Rule{
		Name:     "gate",
		Severity: SeverityError,
		Message:  msg,
		Check: func(v Value, _ Values) (bool, Vars) {
			return yes.Match(v.Raw), nil
		},
	}
}

var namePattern = regexp.MustCompile(`^[a-zA-Z\s\-\.]+$`)

// Affirmative is the plain yes set used by gate and eligibility checks.
var Affirmative = keyword.NewSet("yes", "y")

// NameRules are shared by every pathway's full-name field.
func NameRules() []Rule {
	return []Rule{
		MinLength(2, SeverityError, "Name must be at least {{min}} characters."),
		CharClass(namePattern, 2, "Name should only contain letters, spaces, hyphens, and periods."),
	}
}
