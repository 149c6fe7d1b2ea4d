package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"academy-assistant/internal/common/keyword"
	"academy-assistant/internal/common/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLink = "https://forms.example.com/trial?src=chat&x=1"

var (
	testYes = keyword.NewSet("yes", "y")
	testNo  = keyword.NewSet("no", "n")
	testURL = regexp.MustCompile(`(https?://(?:www\.)?|www\.)[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}(/\S*)?`)
)

func testCategory() *Category {
	return &Category{
		Canonical: []string{"GK", "CB", "ST"},
		Aliases: map[string]string{
			"GOALKEEPER":  "GK",
			"KEEPER":      "GK",
			"CENTRE BACK": "CB",
			"STRIKER":     "ST",
		},
		MinLength:       2,
		UnknownMessage:  "Position '{{raw}}' not recognized.",
		TooShortMessage: "Position '{{raw}}' is too short.",
	}
}

// trialSchema is a compact schema covering every rule shape.
func trialSchema() *Schema {
	age := NumericBounds{
		Min: Bound(16), Max: Bound(30), WarnAbove: Bound(24),
		MinMessage:       "Age {{n}} is too young.",
		MaxMessage:       "Age {{n}} is too high.",
		WarnAboveMessage: "Age {{n}} has limited eligibility.",
	}
	video := ConditionalLink{
		Yes: testYes, No: testNo, URL: testURL,
		MissingLinkMessage: "Yes but no link.",
		UnclearMessage:     "Say yes or no.",
	}
	return &Schema{
		Name:           "trial",
		Title:          "Trial Intake",
		Emoji:          "🧪",
		IDPrefix:       "T",
		Noun:           "Trialist",
		Example:        "Jo Bloggs, 18, Keeper, Pro, http://video.example.com/1, Yes",
		ApprovedHeader: "TRIAL: APPROVED!",
		RejectedHeader: "TRIAL: NOT ELIGIBLE.",
		ApprovedBody:   "Welcome aboard.",
		Fields: []FieldSpec{
			{Key: "name", Prompt: "Full Name", Parse: TextParser(), Rules: []Rule{
				MinLength(2, SeverityError, "Name must be at least {{min}} characters."),
				CharClass(regexp.MustCompile(`^[a-zA-Z\s\-\.]+$`), 2, "Name has invalid characters."),
			}},
			{Key: "age", Prompt: "Age", Parse: IntParser("Age '{{raw}}' must be a valid number."), Rules: age.Rules()},
			{Key: "position", Prompt: "Position", Parse: testCategory().Parser()},
			{Key: "level", Prompt: "Level", Rules: []Rule{
				Keywords(keyword.NewSet("semi-pro", "pro"), SeverityError, "Level '{{raw}}' not recognized."),
			}},
			{Key: "video", Prompt: "Video", Rules: video.Rules()},
			{Key: "relocation", Prompt: "Relocation", Rules: []Rule{Gate(testYes, "Relocation must be 'Yes'.")}},
		},
		Criteria: []Criterion{
			{Key: "age", Label: "Age", Required: "16-24", Phrase: "You are", Met: func(v Values) bool {
				return v["age"].Number >= 16 && v["age"].Number <= 24
			}},
			{Key: "relocation", Label: "Relocation", Required: "Yes", Phrase: "You said:", Met: func(v Values) bool {
				return testYes.Match(v["relocation"].Raw)
			}},
		},
	}
}

func fixedIDs() *SequenceIDs {
	return NewSequenceIDs(func() time.Time { return time.Unix(1700000000, 0) })
}

func newTrialSession(t *testing.T) *Session {
	t.Helper()
	schema := trialSchema()
	require.NoError(t, schema.Validate())
	return NewSession(schema, NewEvaluator(testLink, fixedIDs()), logger.NewTestLogger(t))
}

func TestSession_Start(t *testing.T) {
	s := newTrialSession(t)
	assert.Equal(t, StageIdle, s.Stage())

	msg := s.Start()
	assert.Equal(t, StageAwaitingInput, s.Stage())
	assert.Contains(t, msg, "🧪 **Trial Intake.**")
	assert.Contains(t, msg, "**Full Name, Age, Position, Level, Video, Relocation**")
	assert.Contains(t, msg, fraudWarning)
	assert.True(t, strings.HasSuffix(msg, "Example: `Jo Bloggs, 18, Keeper, Pro, http://video.example.com/1, Yes`"))
}

func TestSession_CleanSubmissionIsAccepted(t *testing.T) {
	s := newTrialSession(t)
	s.Start()

	msg := s.Advance("Jo Bloggs, 18, Keeper, Pro, http://video.example.com/1, Yes")

	assert.Equal(t, StageAccepted, s.Stage())
	assert.Equal(t, OutcomeAccepted, s.LastOutcome())
	assert.Contains(t, msg, "APPROVED")
	assert.Contains(t, msg, "(ID: T-1700000000)")
	assert.Contains(t, msg, "("+testLink+")")
	require.NotNil(t, s.Verdict())
	assert.Equal(t, "T-1700000000", s.Verdict().TalentID)
	assert.Nil(t, s.Pending())
	assert.Equal(t, "GK", s.LastReport().Values["position"].Text)
}

func TestSession_CountMismatch(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		received   int
		echoed     []string
		notEchoed  []string
		moreSuffix string
	}{
		{
			name:     "too few",
			msg:      "Jo, 18, GK",
			received: 3,
			echoed:   []string{"1. `Jo`", "2. `18`", "3. `GK`"},
		},
		{
			name:       "too many",
			msg:        "a, b, c, d, e, f, g, h",
			received:   8,
			echoed:     []string{"1. `a`", "5. `e`"},
			notEchoed:  []string{"6. `f`"},
			moreSuffix: "... and 3 more items.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTrialSession(t)
			s.Start()

			msg := s.Advance(tt.msg)

			assert.Equal(t, StageAwaitingInput, s.Stage())
			assert.Equal(t, OutcomeCountMismatch, s.LastOutcome())
			assert.Contains(t, msg, "Expected 6 items, received ")
			for _, e := range tt.echoed {
				assert.Contains(t, msg, e)
			}
			for _, e := range tt.notEchoed {
				assert.NotContains(t, msg, e)
			}
			if tt.moreSuffix != "" {
				assert.Contains(t, msg, tt.moreSuffix)
			}
			for i, p := range s.Schema().Prompts() {
				assert.Contains(t, msg, fmt.Sprintf("%d. `%s`", i+1, p))
			}
			assert.Nil(t, s.LastReport())
		})
	}
}

func TestSession_ErrorsAreCollectedAndBlockCommit(t *testing.T) {
	s := newTrialSession(t)
	s.Start()

	msg := s.Advance("J, abc, Q, Amateur, maybe, No")

	assert.Equal(t, StageAwaitingInput, s.Stage())
	assert.Equal(t, OutcomeInvalid, s.LastOutcome())
	assert.Nil(t, s.Verdict())

	report := s.LastReport()
	require.NotNil(t, report)
	var got []string
	for _, f := range report.Errors {
		got = append(got, f.Message)
	}
	want := []string{
		"Name must be at least 2 characters.",
		"Age 'abc' must be a valid number.",
		"Position 'Q' is too short.",
		"Level 'Amateur' not recognized.",
		"Relocation must be 'Yes'.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "Say yes or no.", report.Warnings[0].Message)

	assert.Contains(t, msg, "❌ **Please fix these issues:**")
	assert.Contains(t, msg, "• Name must be at least 2 characters.")
	assert.Contains(t, msg, "⚠️ **Also note:**\n• Say yes or no.")

	_, ok := report.Bundle(s.Schema())
	assert.False(t, ok)
}

func TestSession_WarningConfirmation(t *testing.T) {
	const withWarnings = "Jo Bloggs, 26, Striker, Semi-Pro, yes, Yes"

	t.Run("yes commits and evaluates", func(t *testing.T) {
		s := newTrialSession(t)
		s.Start()

		msg := s.Advance(withWarnings)
		assert.Equal(t, StageAwaitingWarningConfirmation, s.Stage())
		assert.Contains(t, msg, "• Age 26 has limited eligibility.")
		assert.Contains(t, msg, "• Yes but no link.")
		require.NotNil(t, s.Pending())
		assert.Equal(t, "ST", s.Pending().Get("position").Text)

		msg = s.Advance("Yes, proceed")
		assert.Equal(t, StageRejected, s.Stage())
		assert.Contains(t, msg, "NOT ELIGIBLE")
		assert.Contains(t, msg, "Age: 16-24 (You are 26)")
		assert.Nil(t, s.Pending())
	})

	t.Run("ambiguous answer keeps pending", func(t *testing.T) {
		s := newTrialSession(t)
		s.Start()
		s.Advance(withWarnings)

		msg := s.Advance("hmm, not sure")
		assert.Equal(t, reaskMessage, msg)
		assert.Equal(t, StageAwaitingWarningConfirmation, s.Stage())
		assert.NotNil(t, s.Pending())
	})

	t.Run("no discards and reaches the same warnings again", func(t *testing.T) {
		s := newTrialSession(t)
		s.Start()
		first := s.Advance(withWarnings)
		firstWarnings := s.LastReport().Warnings

		msg := s.Advance("No, let me change it")
		assert.Equal(t, StageAwaitingInput, s.Stage())
		assert.Nil(t, s.Pending())
		assert.Contains(t, msg, "adjust the problematic areas")
		assert.Contains(t, msg, "**Full Name, Age, Position, Level, Video, Relocation**")

		second := s.Advance(withWarnings)
		assert.Equal(t, first, second)
		if diff := cmp.Diff(firstWarnings, s.LastReport().Warnings); diff != "" {
			t.Errorf("warnings differ after revise (-first +second):\n%s", diff)
		}
	})
}

func TestSession_UnexpectedState(t *testing.T) {
	s := newTrialSession(t)
	assert.Equal(t, UnexpectedStateMessage, s.Advance("hello"))
	assert.Equal(t, OutcomeUnexpected, s.LastOutcome())

	s.Start()
	s.Advance("Jo Bloggs, 18, GK, Pro, no, Yes")
	require.Equal(t, StageAccepted, s.Stage())
	assert.Equal(t, UnexpectedStateMessage, s.Advance("another one"))
	assert.Equal(t, StageAccepted, s.Stage())
}

func TestSession_PanickingRuleIsContained(t *testing.T) {
	schema := trialSchema()
	schema.Fields[0].Rules = append(schema.Fields[0].Rules, Rule{
		Name: "boom", Severity: SeverityError, Message: "x",
		Check: func(Value, Values) (bool, Vars) { panic("broken rule") },
	})
	s := NewSession(schema, NewEvaluator(testLink, fixedIDs()), logger.NewNoOpLogger())
	s.Start()

	assert.Equal(t, UnexpectedStateMessage, s.Advance("Jo Bloggs, 18, GK, Pro, no, Yes"))
	assert.Equal(t, StageAwaitingInput, s.Stage())
}

func TestSession_SnapshotRestore(t *testing.T) {
	s := newTrialSession(t)
	s.Start()
	s.Advance("Jo Bloggs, 26, GK, Pro, no, Yes")
	require.Equal(t, StageAwaitingWarningConfirmation, s.Stage())

	snap := s.Snapshot()
	restored, err := Restore(trialSchema(), NewEvaluator(testLink, fixedIDs()), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingWarningConfirmation, restored.Stage())

	msg := restored.Advance("ok")
	assert.Contains(t, msg, "NOT ELIGIBLE")

	_, err = Restore(trialSchema(), nil, Snapshot{Schema: "other", Stage: "idle"}, nil)
	assert.Error(t, err)
	_, err = Restore(trialSchema(), nil, Snapshot{Schema: "trial", Stage: "bogus"}, nil)
	assert.Error(t, err)
	_, err = Restore(trialSchema(), nil, Snapshot{Schema: "trial", Stage: "awaiting_warning_confirmation"}, nil)
	assert.Error(t, err)
}

func TestSequenceIDs_Monotonic(t *testing.T) {
	ids := fixedIDs()
	assert.Equal(t, "P-1700000000", ids.Next("P"))
	assert.Equal(t, "C-1700000001", ids.Next("C"))
	assert.Equal(t, "P-1700000002", ids.Next("P"))
}

func TestNumericBounds_Properties(t *testing.T) {
	bounds := NumericBounds{
		Min: Bound(16), Max: Bound(30), WarnAbove: Bound(24),
		MinMessage: "low", MaxMessage: "high", WarnAboveMessage: "soft",
	}
	schema := &Schema{Name: "n", IDPrefix: "N", Fields: []FieldSpec{
		{Key: "age", Prompt: "Age", Parse: IntParser("nan"), Rules: bounds.Rules()},
	}}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("below the floor is always an error", prop.ForAll(
		func(n int) bool {
			r, err := Validate(schema, Submission{strconv.Itoa(n)})
			return err == nil && r.HasErrors() && r.Errors[0].Message == "low"
		},
		gen.IntRange(-1000, 15),
	))

	properties.Property("between floor and soft ceiling is clean", prop.ForAll(
		func(n int) bool {
			r, err := Validate(schema, Submission{strconv.Itoa(n)})
			return err == nil && !r.HasErrors() && !r.HasWarnings()
		},
		gen.IntRange(16, 24),
	))

	properties.Property("between soft and hard ceiling only warns", prop.ForAll(
		func(n int) bool {
			r, err := Validate(schema, Submission{strconv.Itoa(n)})
			return err == nil && !r.HasErrors() && len(r.Warnings) == 1
		},
		gen.IntRange(25, 30),
	))

	properties.Property("above the hard ceiling errors without warning", prop.ForAll(
		func(n int) bool {
			r, err := Validate(schema, Submission{strconv.Itoa(n)})
			return err == nil && len(r.Errors) == 1 && !r.HasWarnings()
		},
		gen.IntRange(31, 1000),
	))

	properties.TestingRun(t)
}

func TestCategory_NormalizeIsIdempotent(t *testing.T) {
	c := testCategory()
	var inputs []interface{}
	for alias := range c.Aliases {
		inputs = append(inputs, alias, strings.ToLower(alias))
	}
	for _, code := range c.Canonical {
		inputs = append(inputs, code)
	}

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	check := func(raw string) bool {
		once, _ := c.Normalize(raw)
		twice, _ := c.Normalize(once)
		return once == twice
	}
	properties.Property("known aliases", prop.ForAll(check, gen.OneConstOf(inputs...)))
	properties.Property("arbitrary text", prop.ForAll(check, gen.AlphaString()))
	properties.TestingRun(t)
}

func TestEvaluator_UnreachableWithErrors(t *testing.T) {
	schema := trialSchema()
	evaluated := 0
	schema.Criteria = append(schema.Criteria, Criterion{
		Key: "name", Label: "Probe", Required: "-", Phrase: "-",
		Met: func(Values) bool { evaluated++; return true },
	})
	s := NewSession(schema, NewEvaluator(testLink, fixedIDs()), nil)
	s.Start()

	s.Advance("Jo Bloggs, 12, GK, Pro, no, Yes")
	assert.Equal(t, StageAwaitingInput, s.Stage())
	assert.Zero(t, evaluated)

	s.Advance("Jo Bloggs, 18, GK, Pro, no, Yes")
	assert.Equal(t, 1, evaluated)
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data Vars
		want string
	}{
		{name: "known and unknown keys", tmpl: "Age {{n}} of {{max}} {{missing}}!", data: Vars{"n": 31, "max": "30"}, want: "Age 31 of 30 !"},
		{name: "braces in a value are echoed", tmpl: "Age '{{raw}}' must be a valid number.", data: Vars{"raw": "abc{{min}}", "min": 16},
			want: "Age 'abc{{min}}' must be a valid number."},
		{name: "value naming another key", tmpl: "{{a}} {{b}}", data: Vars{"a": "{{b}}", "b": "x"}, want: "{{b}} x"},
		{name: "unterminated placeholder", tmpl: "Pace {{n", data: Vars{"n": 3}, want: "Pace {{n"},
		{name: "nil value", tmpl: "[{{v}}]", data: Vars{"v": nil}, want: "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTemplate(tt.tmpl, tt.data))
		})
	}
}

func TestValidate_EchoesRawInputVerbatim(t *testing.T) {
	schema := &Schema{
		Name: "echo",
		Fields: []FieldSpec{
			{Key: "age", Prompt: "Age", Parse: IntParser("Age '{{raw}}' must be a valid number.")},
		},
	}
	report, err := Validate(schema, []string{"abc{{min}}"})
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Age 'abc{{min}}' must be a valid number.", report.Errors[0].Message)
}
