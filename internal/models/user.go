package models

import (
	"fmt"
	"strings"
)

// UserType tracks who the assistant believes it is talking to.
type UserType string

const (
	UserTypeUnknown          UserType = "unknown"
	UserTypeAwaitingTalentID UserType = "awaiting_talent_id"
	UserTypeExistingPlayer   UserType = "existing_player"
	UserTypeExistingCoach    UserType = "existing_coach"
	UserTypeGeneralInquiry   UserType = "new_user_general_inquiry"
	UserTypeNewPlayer        UserType = "new_player"
	UserTypeNewCoach         UserType = "new_coach"
	UserTypeApplicant        UserType = "applicant"
)

// ParseUserType accepts the persisted string form. Unknown values map to UserTypeUnknown.
func ParseUserType(s string) UserType {
	switch t := UserType(s); t {
	case UserTypeAwaitingTalentID, UserTypeExistingPlayer, UserTypeExistingCoach,
		UserTypeGeneralInquiry, UserTypeNewPlayer, UserTypeNewCoach, UserTypeApplicant:
		return t
	default:
		return UserTypeUnknown
	}
}

// Existing reports whether the user is a recognised academy member.
func (t UserType) Existing() bool {
	return t == UserTypeExistingPlayer || t == UserTypeExistingCoach
}

type MemberKind string

const (
	MemberKindPlayer MemberKind = "player"
	MemberKindCoach  MemberKind = "coach"
)

// KindForTalentID derives the member kind from the id prefix.
func KindForTalentID(id string) (MemberKind, bool) {
	switch {
	case strings.HasPrefix(id, "P"):
		return MemberKindPlayer, true
	case strings.HasPrefix(id, "C"):
		return MemberKindCoach, true
	default:
		return "", false
	}
}

// Member is an academy member record.
type Member struct {
	TalentID        string     `json:"talentId" db:"talent_id"`
	Kind            MemberKind `json:"kind" db:"kind"`
	Name            string     `json:"name" db:"name"`
	Age             int        `json:"age" db:"age"`
	Position        string     `json:"position,omitempty" db:"position"`
	Specialty       string     `json:"specialty,omitempty" db:"specialty"`
	YearsExperience int        `json:"yearsExperience" db:"years_experience"`
	Level           string     `json:"level" db:"level"`
	PreviousClub    string     `json:"previousClub,omitempty" db:"previous_club"`
}

// UserType is the conversation user type for this member.
func (m *Member) UserType() UserType {
	if m.Kind == MemberKindCoach {
		return UserTypeExistingCoach
	}
	return UserTypeExistingPlayer
}

// Profile renders the member for advisory prompts.
func (m *Member) Profile() string {
	if m.Kind == MemberKindCoach {
		return fmt.Sprintf("Name: %s\nAge: %d\nSpecialty: %s\nYears of experience: %d\nCoaching level: %s",
			m.Name, m.Age, m.Specialty, m.YearsExperience, m.Level)
	}
	return fmt.Sprintf("Name: %s\nAge: %d\nPosition: %s\nYears played: %d\nSkill level: %s\nPrevious club: %s",
		m.Name, m.Age, m.Position, m.YearsExperience, m.Level, m.PreviousClub)
}
