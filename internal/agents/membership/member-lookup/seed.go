package memberlookup

import "academy-assistant/internal/models"

// seedMembers is the built-in directory used when no database is configured.
var seedMembers = map[string]models.Member{
	"P001": {TalentID: "P001", Kind: models.MemberKindPlayer, Name: "Marcus Johnson", Age: 19, Position: "CB", YearsExperience: 4, Level: "Advanced", PreviousClub: "Youth Academy FC"},
	"P002": {TalentID: "P002", Kind: models.MemberKindPlayer, Name: "Sofia Martinez", Age: 18, Position: "CAM", YearsExperience: 3, Level: "Intermediate", PreviousClub: "Regional United"},
	"P003": {TalentID: "P003", Kind: models.MemberKindPlayer, Name: "Ahmed Al-Rashid", Age: 20, Position: "ST", YearsExperience: 5, Level: "Elite", PreviousClub: "Development League"},
	"P004": {TalentID: "P004", Kind: models.MemberKindPlayer, Name: "Elena Kowalski", Age: 17, Position: "GK", YearsExperience: 4, Level: "Intermediate", PreviousClub: "Junior Academy"},
	"P005": {TalentID: "P005", Kind: models.MemberKindPlayer, Name: "Carlos Rivera", Age: 21, Position: "CM", YearsExperience: 4, Level: "Advanced", PreviousClub: "Premier Youth"},
	"C001": {TalentID: "C001", Kind: models.MemberKindCoach, Name: "James Mitchell", Age: 35, Specialty: "Youth Development", YearsExperience: 8, Level: "Senior"},
	"C002": {TalentID: "C002", Kind: models.MemberKindCoach, Name: "Maria Santos", Age: 28, Specialty: "Tactical Analysis", YearsExperience: 5, Level: "Assistant"},
	"C003": {TalentID: "C003", Kind: models.MemberKindCoach, Name: "David Chen", Age: 42, Specialty: "Goalkeeping", YearsExperience: 12, Level: "Head Coach"},
}

func seedLookup(id string) (*models.Member, bool) {
	m, ok := seedMembers[id]
	if !ok {
		return nil, false
	}
	return &m, true
}
