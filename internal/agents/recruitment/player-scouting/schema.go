// Package playerscouting defines the player recruitment pathway: fields, validation
// rules and eligibility criteria.
package playerscouting

import (
	"fmt"
	"regexp"

	"academy-assistant/internal/common/keyword"
	"academy-assistant/internal/intake"
)

const (
	SchemaName = "player"
	IDPrefix   = "P"

	Example = "John Doe, 18, Striker, 4, Semi-pro, 5'10 160lbs right foot pace 8, Regional Cup winner, http://youtube.com/2, Yes"
)

var (
	heightPattern = regexp.MustCompile(`(\d+'?\d*"?|\d+\.\d+\s*m|\d+\s*cm)`)
	pacePattern   = regexp.MustCompile(`pace\s*[:=\-]?\s*(\d+)`)
	urlPattern    = regexp.MustCompile(`(https?://(?:www\.)?|www\.)[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}(/\S*)?`)

	levelKeywords = keyword.NewSet("semi-professional", "semi pro", "semi-pro", "professional", "pro")
	videoYes      = keyword.NewSet("yes", "y", "true")
	videoNo       = keyword.NewSet("no", "n", "false")
)

// Positions maps common names onto the canonical position codes.
var Positions = &intake.Category{
	Canonical: []string{"GK", "CB", "LB", "RB", "CDM", "CM", "CAM", "LM", "RM", "LW", "RW", "ST", "CF"},
	Aliases: map[string]string{
		"GOALKEEPER": "GK", "KEEPER": "GK", "GOALIE": "GK",
		"CENTERBACK": "CB", "CENTER BACK": "CB", "CENTRE BACK": "CB", "CD": "CB",
		"LEFTBACK": "LB", "LEFT BACK": "LB",
		"RIGHTBACK": "RB", "RIGHT BACK": "RB",
		"DEFENSIVE MIDFIELDER": "CDM", "DEFENSIVE MID": "CDM",
		"CENTRAL MIDFIELDER": "CM", "CENTRAL MID": "CM", "MIDFIELDER": "CM", "MIDFIELD": "CM",
		"ATTACKING MIDFIELDER": "CAM", "ATTACKING MID": "CAM", "ATTACKING": "CAM",
		"LEFT MIDFIELDER": "LM", "LEFT MID": "LM",
		"RIGHT MIDFIELDER": "RM", "RIGHT MID": "RM",
		"LEFT WINGER": "LW", "LEFTWING": "LW", "WINGER": "LW",
		"RIGHT WINGER": "RW", "RIGHTWING": "RW",
		"STRIKER": "ST", "FORWARD": "ST",
		"CENTER FORWARD": "CF", "CENTRE FORWARD": "CF",
	},
	MinLength:       2,
	UnknownMessage:  "Position '{{raw}}' not recognized. Use common abbreviations (e.g., 'ST', 'CM', 'GK') or full names.",
	TooShortMessage: "Position '{{raw}}' is too short. Please provide a clear position.",
}

// NewSchema builds the player schema for the given thresholds.
func NewSchema(cfg *Config) *intake.Schema {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	age := intake.NumericBounds{
		Min:              intake.Bound(cfg.MinAge),
		Max:              intake.Bound(cfg.MaxAge),
		WarnAbove:        intake.Bound(cfg.WarnAboveAge),
		MinMessage:       "Age {{n}} is too young. Must be at least {{min}} for academy consideration.",
		MaxMessage:       "Age {{n}} is too high for player development programs. Must be under {{max}}.",
		WarnAboveMessage: "Player age {{n}} has limited eligibility for direct player programs. Consider coaching pathway if interested.",
	}
	years := intake.NumericBounds{
		Min:              intake.Bound(0),
		Max:              intake.Bound(cfg.MaxYearsPlayed),
		WarnBelow:        intake.Bound(cfg.WarnBelowYears),
		MinMessage:       "Years played cannot be negative.",
		MaxMessage:       "Years played ({{n}}) seems unusually high. Please confirm.",
		WarnBelowMessage: "Less than {{warn_below}} years of organized experience ({{n}} years) may affect eligibility for direct academy programs.",
	}
	video := intake.ConditionalLink{
		Yes:                videoYes,
		No:                 videoNo,
		URL:                urlPattern,
		MissingLinkMessage: "You indicated 'Yes' for video highlights but no clear link was found. Please include a full URL.",
		UnclearMessage:     "Please specify 'Yes' or 'No' for video highlights, and a link if 'Yes'.",
	}

	physicalRules := []intake.Rule{
		intake.MinLength(cfg.MinPhysicalLength, intake.SeverityError,
			"Physical attributes seem incomplete. Include: height, weight, dominant foot, pace (1-10)."),
		intake.Pattern("height", heightPattern, intake.SeverityWarning,
			"Height not clearly specified in physical attributes (e.g., 5'10, 1.75m, 175cm)."),
		intake.LabeledNumber("pace_range", pacePattern, cfg.MinPace, cfg.MaxPace,
			"Pace rating '{{n}}' should be between {{min}}-{{max}}."),
		intake.Pattern("pace", pacePattern, intake.SeverityWarning,
			"Pace rating (1-10) not found in physical attributes (e.g., 'pace 8')."),
	}

	return &intake.Schema{
		Name:           SchemaName,
		Title:          "QUCOON Player Recruitment Evaluation",
		Emoji:          "📋",
		IDPrefix:       IDPrefix,
		Noun:           "Player",
		Example:        Example,
		ApprovedHeader: "QUCOON RECRUITMENT: APPROVED!",
		RejectedHeader: "QUCOON RECRUITMENT: NOT ELIGIBLE.",
		ApprovedBody: "Congratulations! You've met our eligibility criteria for QUCOON Academy.\n" +
			"To further your application, please fill out the official registration form here:",
		Fields: []intake.FieldSpec{
			{Key: "name", Prompt: "Full Name", Parse: intake.TextParser(), Rules: intake.NameRules()},
			{Key: "age", Prompt: "Age (number)", Parse: intake.IntParser("Age '{{raw}}' must be a valid number."), Rules: age.Rules()},
			{Key: "position", Prompt: "Primary Position", Parse: Positions.Parser()},
			{Key: "years_played", Prompt: "Years playing organized football (number)",
				Parse: intake.IntParser("Years played '{{raw}}' must be a valid number."), Rules: years.Rules()},
			{Key: "current_level", Prompt: "Current Playing Level (Semi-professional/Professional only)", Rules: []intake.Rule{
				intake.Keywords(levelKeywords, intake.SeverityError,
					"Current level '{{raw}}' not recognized as Semi-professional or Professional. Please specify clearly."),
			}},
			{Key: "physical_attributes", Prompt: "Physical Attributes (height, weight, dominant foot, pace 1-10)", Rules: physicalRules},
			{Key: "achievements", Prompt: "Main Football Achievements", Rules: []intake.Rule{
				intake.MinLength(cfg.MinAchievementLength, intake.SeverityWarning,
					"Achievements field seems very short. Please list significant football achievements."),
			}},
			{Key: "video_highlights", Prompt: "Video Highlights (Yes/No, and link/details if Yes)", Rules: video.Rules()},
			{Key: "availability", Prompt: "Available for Relocation (Yes/No)", Rules: []intake.Rule{
				intake.Gate(intake.Affirmative, "Availability for relocation must be 'Yes' for academy consideration."),
			}},
		},
		Criteria: criteria(cfg),
	}
}

func criteria(cfg *Config) []intake.Criterion {
	return []intake.Criterion{
		{
			Key: "age", Label: "Age", Phrase: "You are",
			Required: fmt.Sprintf("%d-%d", cfg.EligibleMinAge, cfg.EligibleMaxAge),
			Met: func(v intake.Values) bool {
				n := v["age"].Number
				return n >= cfg.EligibleMinAge && n <= cfg.EligibleMaxAge
			},
		},
		{
			Key: "years_played", Label: "Experience", Phrase: "You have",
			Required: fmt.Sprintf("%d-%d years", cfg.EligibleMinYears, cfg.EligibleMaxYears),
			Met: func(v intake.Values) bool {
				n := v["years_played"].Number
				return n >= cfg.EligibleMinYears && n <= cfg.EligibleMaxYears
			},
		},
		{
			Key: "current_level", Label: "Level", Required: "Semi-pro/Pro", Phrase: "You are:",
			Met: func(v intake.Values) bool { return levelKeywords.Match(v["current_level"].Raw) },
		},
		{
			Key: "availability", Label: "Relocation", Required: "Yes", Phrase: "You said:",
			Met: func(v intake.Values) bool { return intake.Affirmative.Match(v["availability"].Raw) },
		},
	}
}
