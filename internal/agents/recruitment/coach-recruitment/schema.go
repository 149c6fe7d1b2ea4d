// Package coachrecruitment defines the coaching pathway schema.
package coachrecruitment

import (
	"fmt"

	"academy-assistant/internal/common/keyword"
	"academy-assistant/internal/intake"
)

const (
	SchemaName = "coach"
	IDPrefix   = "C"

	Example = "Jane Smith, 35, 10, UEFA Pro, Youth Development, Head Coach U19s Dynamo, Yes, Immediately"
)

var (
	// b license is accepted at intake but does not meet the head/senior bar.
	certificationKeywords = keyword.NewSet("pro", "a license", "uefa pro", "caf a", "ussf a", "fifa", "premier diploma", "b license")
	seniorCertKeywords    = keyword.NewSet("pro", "a license", "uefa pro", "caf a", "ussf a", "fifa", "premier diploma")
	seniorRoleKeywords    = keyword.NewSet("head coach", "senior coach", "technical director", "first team coach", "manager", "director of football")
)

func NewSchema(cfg *Config) *intake.Schema {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	age := intake.NumericBounds{
		Min:              intake.Bound(cfg.MinAge),
		WarnAbove:        intake.Bound(cfg.WarnAboveAge),
		MinMessage:       "Age {{n}} is below minimum eligible age for coaching ({{min}}).",
		WarnAboveMessage: "Age {{n}} seems high for active coaching. Please confirm.",
	}
	years := intake.NumericBounds{
		Min:              intake.Bound(cfg.MinYears),
		WarnAbove:        intake.Bound(cfg.WarnAboveYears),
		MinMessage:       "Years of experience ({{n}}) is below minimum eligible ({{min}} years).",
		WarnAboveMessage: "Years of experience ({{n}}) seems unusually high. Please confirm.",
	}

	return &intake.Schema{
		Name:           SchemaName,
		Title:          "QUCOON Coach Recruitment Evaluation",
		Emoji:          "👔",
		IDPrefix:       IDPrefix,
		Noun:           "Coach",
		Example:        Example,
		ApprovedHeader: "QUCOON COACH RECRUITMENT: APPROVED!",
		RejectedHeader: "QUCOON COACH RECRUITMENT: NOT ELIGIBLE for Head/Senior Role.",
		ApprovedBody: "Congratulations! You've met our eligibility criteria for QUCOON Academy.\n" +
			"To further your application, please fill out the official registration form here:",
		Fields: []intake.FieldSpec{
			{Key: "name", Prompt: "Full Name", Parse: intake.TextParser(), Rules: intake.NameRules()},
			{Key: "age", Prompt: "Age (number)", Parse: intake.IntParser("Age '{{raw}}' must be a valid number."), Rules: age.Rules()},
			{Key: "years_experience", Prompt: "Years of Coaching Experience (number)",
				Parse: intake.IntParser("Years of experience '{{raw}}' must be a valid number."), Rules: years.Rules()},
			{Key: "highest_certification", Prompt: "Highest Coaching Certification", Rules: []intake.Rule{
				intake.Keywords(certificationKeywords, intake.SeverityError,
					"Highest certification '{{raw}}' not recognized as a high-level qualification (e.g., UEFA Pro, A License)."),
			}},
			{Key: "specialty", Prompt: "Primary Coaching Specialty", Rules: []intake.Rule{
				intake.MinLength(cfg.MinSpecialtyLength, intake.SeverityError,
					"Specialty field seems too short or empty. Please specify a coaching specialty (e.g., 'Youth Development', 'Tactical Analysis')."),
			}},
			{Key: "previous_roles", Prompt: "Previous Head Coach/Senior Roles", Rules: []intake.Rule{
				intake.Keywords(seniorRoleKeywords, intake.SeverityError,
					"Previous roles '{{raw}}' do not indicate senior-level experience (e.g., Head Coach, Technical Director)."),
			}},
			{Key: "references_available", Prompt: "Professional References Available (Yes/No)", Rules: []intake.Rule{
				intake.Gate(intake.Affirmative, "Professional references must be available ('Yes')."),
			}},
			{Key: "availability_start_date", Prompt: "Availability Start Date (e.g., 'Immediately', 'Sept 1, 2025')", Rules: []intake.Rule{
				intake.MinLength(cfg.MinStartDateLength, intake.SeverityError,
					"Availability start date seems too short. Please provide a clear date or 'Immediately'."),
			}},
		},
		Criteria: []intake.Criterion{
			{
				Key: "age", Label: "Age", Phrase: "You are",
				Required: fmt.Sprintf("%d+", cfg.EligibleMinAge),
				Met:      func(v intake.Values) bool { return v["age"].Number >= cfg.EligibleMinAge },
			},
			{
				Key: "years_experience", Label: "Experience", Phrase: "You have",
				Required: fmt.Sprintf("%d+ years", cfg.EligibleMinYears),
				Met:      func(v intake.Values) bool { return v["years_experience"].Number >= cfg.EligibleMinYears },
			},
			{
				Key: "highest_certification", Label: "Certification", Required: "High-level", Phrase: "You provided:",
				Met: func(v intake.Values) bool { return seniorCertKeywords.Match(v["highest_certification"].Raw) },
			},
			{
				Key: "previous_roles", Label: "Previous Roles", Required: "Head/Senior", Phrase: "You provided:",
				Met: func(v intake.Values) bool { return seniorRoleKeywords.Match(v["previous_roles"].Raw) },
			},
			{
				Key: "references_available", Label: "References", Required: "Available", Phrase: "You stated:",
				Met: func(v intake.Values) bool { return intake.Affirmative.Match(v["references_available"].Raw) },
			},
		},
	}
}
