// Package conversationrouter decides, turn by turn, whether a message belongs to an
// intake flow, the member lookup, the application-form shortcut or the career advisor.
package conversationrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	careeradvice "academy-assistant/internal/agents/advisory/career-advice"
	memberlookup "academy-assistant/internal/agents/membership/member-lookup"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/common/metrics"
	"academy-assistant/internal/intake"
	"academy-assistant/internal/models"
	"academy-assistant/pkg/registry"
)

// Advisor answers free-form questions.
type Advisor interface {
	Execute(ctx context.Context, input *careeradvice.Input) (*careeradvice.Output, error)
}

// MemberDirectory resolves talent ids.
type MemberDirectory interface {
	Execute(ctx context.Context, input *memberlookup.Input) (*memberlookup.Output, error)
}

// Reply is the result of one turn.
type Reply struct {
	Text     string          `json:"reply"`
	Stage    string          `json:"stage"`
	UserType models.UserType `json:"userType"`
	Status   string          `json:"status"`
}

type Router struct {
	config    *Config
	pathways  *registry.Registry
	evaluator *intake.Evaluator
	members   MemberDirectory
	advisor   Advisor
	logger    logger.Logger
}

// NewRouter wires the collaborators. advisor may be nil, in which case advisory turns
// answer with a not-configured notice.
func NewRouter(cfg *Config, pathways *registry.Registry, evaluator *intake.Evaluator,
	members MemberDirectory, advisor Advisor, log logger.Logger) *Router {
	return &Router{
		config:    cfg,
		pathways:  pathways,
		evaluator: evaluator,
		members:   members,
		advisor:   advisor,
		logger:    logger.ForComponent(log, "conversation-router"),
	}
}

// Welcome records and returns the greeting for a conversation with no history yet.
func (r *Router) Welcome(conv *models.Conversation) string {
	if len(conv.History) == 0 {
		conv.Append(models.RoleAssistant, welcomeMessage)
	}
	return welcomeMessage
}

// Reset clears the conversation and greets again.
func (r *Router) Reset(conv *models.Conversation) string {
	conv.Reset()
	return r.Welcome(conv)
}

// Start greets conv and describes its state.
func (r *Router) Start(conv *models.Conversation) *Reply {
	return r.reply(conv, r.Welcome(conv))
}

// Restart is Reset with the resulting state attached.
func (r *Router) Restart(conv *models.Conversation) *Reply {
	return r.reply(conv, r.Reset(conv))
}

// Handle processes one user message. The conversation must not be shared with a
// concurrent Handle call.
func (r *Router) Handle(ctx context.Context, conv *models.Conversation, message string) *Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return r.reply(conv, emptyMessageReply)
	}

	conv.Append(models.RoleUser, message)
	text := r.route(ctx, conv, message)
	conv.Append(models.RoleAssistant, text)
	return r.reply(conv, text)
}

func (r *Router) reply(conv *models.Conversation, text string) *Reply {
	stage := intake.StageIdle.String()
	if conv.Intake != nil {
		stage = conv.Intake.Stage
	}
	return &Reply{Text: text, Stage: stage, UserType: conv.UserType, Status: r.StatusLine(conv)}
}

func (r *Router) route(ctx context.Context, conv *models.Conversation, message string) string {
	if conv.Intake != nil {
		return r.advanceIntake(conv, message)
	}

	switch conv.UserType {
	case models.UserTypeExistingPlayer, models.UserTypeExistingCoach, models.UserTypeApplicant:
		if nextStageKeywords.Match(message) {
			return fmt.Sprintf(applicationFormFmt, r.config.ApplicationFormURL)
		}
		reply, _ := r.advise(ctx, conv)
		return reply

	case models.UserTypeAwaitingTalentID:
		return r.lookupMember(ctx, conv, message)

	case models.UserTypeGeneralInquiry, models.UserTypeNewPlayer, models.UserTypeNewCoach:
		if pathway, ok := r.pathways.Match(message); ok {
			return r.startIntake(conv, pathway)
		}
		reply, answered := r.advise(ctx, conv)
		if answered && r.config.AdvisoryHint && mentionsAny(reply, hintTriggers) {
			reply += advisoryHint
		}
		return reply

	default:
		switch {
		case talentIDKeywords.Match(message):
			conv.UserType = models.UserTypeAwaitingTalentID
			return talentIDPrompt
		case newUserKeywords.Match(message):
			conv.UserType = models.UserTypeGeneralInquiry
			return generalInquiryWelcome
		default:
			return clarifyUserType
		}
	}
}

func (r *Router) startIntake(conv *models.Conversation, pathway *registry.Pathway) string {
	session := intake.NewSession(pathway.Schema, r.evaluator, r.logger)
	text := session.Start()

	snap := session.Snapshot()
	conv.Intake = &snap
	conv.UserType = models.ParseUserType(pathway.Definition.UserType)
	metrics.RecordIntakeOutcome(pathway.ID(), string(session.LastOutcome()))

	r.logger.Info("intake started", map[string]interface{}{
		"conversationId": conv.ID,
		"pathway":        pathway.ID(),
	})
	return text
}

func (r *Router) advanceIntake(conv *models.Conversation, message string) string {
	pathway, ok := r.pathways.BySchema(conv.Intake.Schema)
	if !ok {
		r.logger.Error("intake bound to unknown schema", map[string]interface{}{
			"conversationId": conv.ID,
			"schema":         conv.Intake.Schema,
		})
		conv.Intake = nil
		return intake.UnexpectedStateMessage
	}

	session, err := intake.Restore(pathway.Schema, r.evaluator, *conv.Intake, r.logger)
	if err != nil {
		r.logger.Error("failed to restore intake", map[string]interface{}{
			"conversationId": conv.ID,
			"error":          err,
		})
		conv.Intake = nil
		return intake.UnexpectedStateMessage
	}

	text := session.Advance(message)
	metrics.RecordIntakeOutcome(pathway.ID(), string(session.LastOutcome()))

	if session.Stage().Terminal() {
		verdict := session.Verdict()
		conv.LastVerdict = verdict
		conv.Intake = nil
		conv.UserType = models.UserTypeApplicant
		if verdict != nil {
			metrics.RecordVerdict(pathway.ID(), verdict.Accepted)
			r.logger.Info("intake finished", map[string]interface{}{
				"conversationId": conv.ID,
				"pathway":        pathway.ID(),
				"accepted":       verdict.Accepted,
				"talentId":       verdict.TalentID,
			})
		}
		return text
	}

	snap := session.Snapshot()
	conv.Intake = &snap
	return text
}

func (r *Router) lookupMember(ctx context.Context, conv *models.Conversation, message string) string {
	if newUserKeywords.Match(message) {
		conv.UserType = models.UserTypeGeneralInquiry
		return generalInquiryWelcome
	}
	if r.members == nil {
		return idNotRecognized
	}

	out, err := r.members.Execute(ctx, &memberlookup.Input{TalentID: message})
	if err != nil {
		if errors.Is(err, memberlookup.ErrInvalidTalentID) {
			return idNotRecognized
		}
		r.logger.Warn("member lookup failed", map[string]interface{}{
			"conversationId": conv.ID,
			"error":          err,
		})
		return lookupUnavailable
	}
	if !out.Found {
		return idNotRecognized
	}

	conv.Member = out.Member
	conv.UserType = out.Member.UserType()
	return fmt.Sprintf(welcomeBackFormat, out.Member.Name)
}

// advise reports false when the reply is an apology rather than advice.
func (r *Router) advise(ctx context.Context, conv *models.Conversation) (string, bool) {
	if r.advisor == nil {
		return advisoryNotConfiguredReply, false
	}

	// the question is the message just appended
	history := conv.History[:len(conv.History)-1]
	question := conv.History[len(conv.History)-1].Content

	out, err := r.advisor.Execute(ctx, &careeradvice.Input{
		Mode:     careeradvice.ModeFor(conv.UserType),
		Member:   conv.Member,
		History:  history,
		Question: question,
	})
	if err != nil {
		r.logger.Warn("advisory unavailable", map[string]interface{}{
			"conversationId": conv.ID,
			"error":          err,
		})
		switch {
		case errors.Is(err, careeradvice.ErrAdvisoryTimeout):
			return advisoryTimeoutReply, false
		case errors.Is(err, careeradvice.ErrAdvisoryNotConfigured):
			return advisoryNotConfiguredReply, false
		default:
			return advisoryFailedReply, false
		}
	}
	return out.Reply, true
}

// StatusLine describes the current mode of the conversation.
func (r *Router) StatusLine(conv *models.Conversation) string {
	if conv.Intake != nil {
		line := "Recruitment Active."
		if pathway, ok := r.pathways.BySchema(conv.Intake.Schema); ok {
			line = pathway.Definition.Indicator
		}
		if conv.Intake.Stage == intake.StageAwaitingInput.String() {
			line += statusAwaitingInput
		}
		return line
	}

	switch conv.UserType {
	case models.UserTypeExistingPlayer, models.UserTypeExistingCoach:
		return statusMentorship
	case models.UserTypeNewPlayer, models.UserTypeNewCoach:
		return statusSelecting
	case models.UserTypeGeneralInquiry:
		return statusGeneralInquiry
	case models.UserTypeApplicant:
		return statusApplicant
	default:
		return statusWelcome
	}
}

func mentionsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
