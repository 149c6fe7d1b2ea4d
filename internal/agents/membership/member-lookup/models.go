package memberlookup

import "academy-assistant/internal/models"

type Input struct {
	TalentID string `json:"talentId"`
}

type Output struct {
	Found  bool           `json:"found"`
	Member *models.Member `json:"member,omitempty"`
	Source string         `json:"source,omitempty"` // cache | database | seed
}
