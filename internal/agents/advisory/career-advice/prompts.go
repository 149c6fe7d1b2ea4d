package careeradvice

import (
	"strings"

	"academy-assistant/internal/models"
)

const academyPreamble = "You are the AI Career Assistant for QUCOON FOOTBALL ACADEMY."

const advisorGuidelines = `
EXPERTISE AREAS:
- Player position analysis and development paths
- Coaching philosophies and management styles
- Career progression from amateur to professional
- Training methods, mental and physical preparation

ALWAYS INCLUDE:
- Reference 2-3 legendary players or coaches who excelled in similar roles
- Specific development steps and training recommendations
- Practical next steps the user can take immediately

Keep responses detailed but conversational, encouraging and grounded in real football knowledge.
Never promise a place at the academy; admission is decided by the recruitment evaluation.`

func buildSystemPrompt(mode Mode, member *models.Member) string {
	var b strings.Builder

	switch mode {
	case ModeExistingPlayer:
		b.WriteString("You are the exclusive CAREER DEVELOPMENT & MENTORSHIP AGENT for QUCOON FOOTBALL ACADEMY.\n")
		b.WriteString("You mentor an enrolled academy player. Tailor every answer to their profile.\n")
		writeProfile(&b, "PLAYER PROFILE", member)
	case ModeExistingCoach:
		b.WriteString("You are the COACHING CAREER CONSULTANT for QUCOON FOOTBALL ACADEMY.\n")
		b.WriteString("You advise an academy coach on their coaching career and licences.\n")
		writeProfile(&b, "COACH PROFILE", member)
	case ModeSelectingPathway:
		b.WriteString(academyPreamble + "\n")
		b.WriteString("The user is choosing between the Player Development and Coaching Development pathways. " +
			"Help them decide and tell them to say 'player' or 'coach' to begin the recruitment evaluation.\n")
	case ModeGeneralInquiry:
		b.WriteString(academyPreamble + "\n")
		b.WriteString("The user is new to the academy and asking general questions. Answer them, then explain that " +
			"they can apply through the Player Development or Coaching Development pathway.\n")
	case ModeApplicant:
		b.WriteString(academyPreamble + "\n")
		b.WriteString("The user has just completed the recruitment evaluation. Help them prepare for the next stage " +
			"and remind them that the application form is available if they ask for the next step.\n")
	default:
		b.WriteString(academyPreamble + "\n")
		b.WriteString("Find out whether the user is an existing academy member with a talent ID or new to the academy.\n")
	}

	b.WriteString(advisorGuidelines)
	return b.String()
}

func writeProfile(b *strings.Builder, title string, member *models.Member) {
	if member == nil {
		return
	}
	b.WriteString("\n" + title + " - " + member.Name + ":\n")
	for _, line := range strings.Split(member.Profile(), "\n") {
		b.WriteString("- " + line + "\n")
	}
}

// trimHistory keeps the most recent limit messages.
func trimHistory(history []models.Message, limit int) []models.Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// alternate drops leading assistant turns and merges consecutive messages from the same
// role, so the transcript starts with the user and alternates strictly.
func alternate(history []models.Message) []models.Message {
	out := make([]models.Message, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		if len(out) == 0 && m.Role != models.RoleUser {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Role == m.Role {
			out[len(out)-1].Content += "\n\n" + m.Content
			continue
		}
		out = append(out, m)
	}
	return out
}
