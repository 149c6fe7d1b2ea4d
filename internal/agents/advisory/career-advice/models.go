package careeradvice

import "academy-assistant/internal/models"

// Mode selects the system prompt for an advisory turn.
type Mode string

const (
	ModeInitial          Mode = "initial"
	ModeSelectingPathway Mode = "selecting_pathway"
	ModeGeneralInquiry   Mode = "general_inquiry"
	ModeExistingPlayer   Mode = "existing_player"
	ModeExistingCoach    Mode = "existing_coach"
	ModeApplicant        Mode = "applicant"
)

// ModeFor maps the conversation user type onto an advisory mode.
func ModeFor(userType models.UserType) Mode {
	switch userType {
	case models.UserTypeExistingPlayer:
		return ModeExistingPlayer
	case models.UserTypeExistingCoach:
		return ModeExistingCoach
	case models.UserTypeGeneralInquiry:
		return ModeGeneralInquiry
	case models.UserTypeNewPlayer, models.UserTypeNewCoach:
		return ModeSelectingPathway
	case models.UserTypeApplicant:
		return ModeApplicant
	default:
		return ModeInitial
	}
}

type Input struct {
	Mode     Mode             `json:"mode"`
	Member   *models.Member   `json:"member,omitempty"`
	History  []models.Message `json:"history,omitempty"`
	Question string           `json:"question"`
}

type Output struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
	Fallback bool   `json:"fallback"`
}

// Prompt is what a Provider sends to its model.
type Prompt struct {
	System      string
	History     []models.Message
	Question    string
	Temperature float64
	MaxTokens   int
}
