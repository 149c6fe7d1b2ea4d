package conversationrouter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	careeradvice "academy-assistant/internal/agents/advisory/career-advice"
	memberlookup "academy-assistant/internal/agents/membership/member-lookup"
	coachrecruitment "academy-assistant/internal/agents/recruitment/coach-recruitment"
	playerscouting "academy-assistant/internal/agents/recruitment/player-scouting"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/intake"
	"academy-assistant/internal/models"
	"academy-assistant/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formURL = "https://forms.example.com/qucoon/apply"

type fakeAdvisor struct {
	reply string
	err   error
	last  *careeradvice.Input
	calls int
}

func (f *fakeAdvisor) Execute(_ context.Context, input *careeradvice.Input) (*careeradvice.Output, error) {
	f.calls++
	f.last = input
	if f.err != nil {
		return nil, f.err
	}
	return &careeradvice.Output{Reply: f.reply, Provider: "fake"}, nil
}

type failingDirectory struct{}

func (failingDirectory) Execute(context.Context, *memberlookup.Input) (*memberlookup.Output, error) {
	return nil, memberlookup.ErrMemberLookupFailed
}

func newRouter(t *testing.T, advisor Advisor) *Router {
	t.Helper()
	reg, err := registry.New(registry.DefaultRegistry(), map[string]*intake.Schema{
		"player": playerscouting.NewSchema(nil),
		"coach":  coachrecruitment.NewSchema(nil),
	})
	require.NoError(t, err)

	ids := intake.NewSequenceIDs(func() time.Time { return time.Unix(1750000000, 0) })
	members := memberlookup.NewHandler(&memberlookup.Config{UseSeed: true}, nil, nil, logger.NewTestLogger(t))
	return NewRouter(&Config{ApplicationFormURL: formURL, AdvisoryHint: true}, reg,
		intake.NewEvaluator(formURL, ids), members, advisor, logger.NewTestLogger(t))
}

func send(t *testing.T, r *Router, conv *models.Conversation, msg string) *Reply {
	t.Helper()
	return r.Handle(context.Background(), conv, msg)
}

func TestWelcomeAndClarification(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	conv := models.NewConversation("c1")

	assert.Equal(t, welcomeMessage, r.Welcome(conv))
	assert.Len(t, conv.History, 1)
	r.Welcome(conv)
	assert.Len(t, conv.History, 1)
	assert.Equal(t, statusWelcome, r.StatusLine(conv))

	reply := send(t, r, conv, "hello there")
	assert.Equal(t, clarifyUserType, reply.Text)
	assert.Equal(t, models.UserTypeUnknown, reply.UserType)
	assert.Equal(t, "idle", reply.Stage)
}

func TestExistingMemberFlow(t *testing.T) {
	advisor := &fakeAdvisor{reply: "Keep working on your aerial duels."}
	r := newRouter(t, advisor)
	conv := models.NewConversation("c2")
	r.Welcome(conv)

	reply := send(t, r, conv, "I'm an existing player")
	assert.Equal(t, talentIDPrompt, reply.Text)
	assert.Equal(t, models.UserTypeAwaitingTalentID, reply.UserType)

	reply = send(t, r, conv, "P999")
	assert.Equal(t, idNotRecognized, reply.Text)
	assert.Equal(t, models.UserTypeAwaitingTalentID, reply.UserType)

	reply = send(t, r, conv, " p001 ")
	assert.Equal(t, "🎯 Welcome back, Marcus Johnson! How can I help your career today?", reply.Text)
	assert.Equal(t, models.UserTypeExistingPlayer, reply.UserType)
	assert.Equal(t, statusMentorship, r.StatusLine(conv))

	reply = send(t, r, conv, "How do I get better at heading?")
	assert.Equal(t, "Keep working on your aerial duels.", reply.Text)
	require.NotNil(t, advisor.last)
	assert.Equal(t, careeradvice.ModeExistingPlayer, advisor.last.Mode)
	assert.Equal(t, "Marcus Johnson", advisor.last.Member.Name)
	assert.Equal(t, "How do I get better at heading?", advisor.last.Question)
	assert.NotContains(t, advisor.last.History, models.Message{Role: models.RoleUser, Content: "How do I get better at heading?"})

	reply = send(t, r, conv, "What is my next step?")
	assert.Equal(t, "Here is the link to the official application form: [Application Form]("+formURL+")", reply.Text)
	assert.Equal(t, 1, advisor.calls)
}

func TestExistingCoach(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{reply: "ok"})
	conv := models.NewConversation("c3")

	send(t, r, conv, "my coach id")
	reply := send(t, r, conv, "C003")
	assert.Equal(t, models.UserTypeExistingCoach, reply.UserType)
	assert.Contains(t, reply.Text, "David Chen")
}

func TestAwaitingTalentID_NewSwitchesPath(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	conv := models.NewConversation("c4")

	send(t, r, conv, "existing")
	reply := send(t, r, conv, "actually I'm new")
	assert.Equal(t, generalInquiryWelcome, reply.Text)
	assert.Equal(t, models.UserTypeGeneralInquiry, reply.UserType)
}

func TestAwaitingTalentID_LookupFailure(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	r.members = failingDirectory{}
	conv := models.NewConversation("c5")

	send(t, r, conv, "talent id")
	reply := send(t, r, conv, "P001")
	assert.Equal(t, lookupUnavailable, reply.Text)
	assert.Equal(t, models.UserTypeAwaitingTalentID, reply.UserType)
}

func TestGeneralInquiryAdvisoryHint(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		hint  bool
	}{
		{name: "mentions the academy", reply: "Our Academy trains every day.", hint: true},
		{name: "mentions programs", reply: "We run several programs.", hint: true},
		{name: "mentions careers", reply: "Careers in football vary.", hint: true},
		{name: "unrelated", reply: "The weather is nice.", hint: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advisor := &fakeAdvisor{reply: tt.reply}
			r := newRouter(t, advisor)
			conv := models.NewConversation("c6")

			send(t, r, conv, "I'm new")
			assert.Equal(t, statusGeneralInquiry, r.StatusLine(conv))
			reply := send(t, r, conv, "What facilities do you have?")

			assert.True(t, strings.HasPrefix(reply.Text, tt.reply))
			assert.Equal(t, tt.hint, strings.HasSuffix(reply.Text, advisoryHint))
			assert.Equal(t, careeradvice.ModeGeneralInquiry, advisor.last.Mode)
		})
	}
}

func TestPlayerIntakeThroughRouter(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{reply: "Good luck with the form."})
	conv := models.NewConversation("c7")
	r.Welcome(conv)

	send(t, r, conv, "new")
	reply := send(t, r, conv, "I want to be a player")
	assert.True(t, strings.HasPrefix(reply.Text, "📋 **QUCOON Player Recruitment Evaluation.**"))
	assert.Equal(t, "awaiting_input", reply.Stage)
	assert.Equal(t, models.UserTypeNewPlayer, reply.UserType)
	assert.Equal(t, "🔍 Player Recruitment Active. Please provide ALL details in ONE message.", r.StatusLine(conv))

	reply = send(t, r, conv, "John Doe, 18")
	assert.Contains(t, reply.Text, "Expected 9 items, received 2.")
	assert.Equal(t, "awaiting_input", reply.Stage)

	reply = send(t, r, conv, playerscouting.Example)
	assert.Contains(t, reply.Text, "APPROVED")
	assert.Contains(t, reply.Text, "P-1750000000")
	assert.Equal(t, "idle", reply.Stage)
	assert.Equal(t, models.UserTypeApplicant, reply.UserType)
	assert.Nil(t, conv.Intake)
	require.NotNil(t, conv.LastVerdict)
	assert.True(t, conv.LastVerdict.Accepted)
	assert.Equal(t, statusApplicant, r.StatusLine(conv))

	reply = send(t, r, conv, "where is the application form?")
	assert.Contains(t, reply.Text, formURL)

	reply = send(t, r, conv, "what should I bring to trials?")
	assert.Equal(t, "Good luck with the form.", reply.Text)
}

func TestCoachIntakeWarningsThroughRouter(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	conv := models.NewConversation("c8")

	send(t, r, conv, "join")
	reply := send(t, r, conv, "coaching")
	assert.True(t, strings.HasPrefix(reply.Text, "👔"))

	submission := strings.Replace(coachrecruitment.Example, ", 35,", ", 72,", 1)
	reply = send(t, r, conv, submission)
	assert.Equal(t, "awaiting_warning_confirmation", reply.Stage)
	assert.Equal(t, "👔 Coach Recruitment Active.", r.StatusLine(conv))

	reply = send(t, r, conv, "hmm")
	assert.Equal(t, "awaiting_warning_confirmation", reply.Stage)

	reply = send(t, r, conv, "yes")
	assert.Contains(t, reply.Text, "APPROVED")
	assert.Equal(t, models.UserTypeApplicant, reply.UserType)
}

func TestIntakeWithUnknownSchemaRecovers(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	conv := models.NewConversation("c9")
	conv.Intake = &intake.Snapshot{Schema: "referee", Stage: "awaiting_input"}

	reply := send(t, r, conv, "anything")
	assert.Equal(t, intake.UnexpectedStateMessage, reply.Text)
	assert.Nil(t, conv.Intake)
}

func TestAdvisoryErrorsBecomeText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: careeradvice.ErrAdvisoryTimeout, want: advisoryTimeoutReply},
		{err: careeradvice.ErrAdvisoryNotConfigured, want: advisoryNotConfiguredReply},
		{err: errors.New("boom"), want: advisoryFailedReply},
	}
	for _, tt := range tests {
		r := newRouter(t, &fakeAdvisor{err: tt.err})
		conv := models.NewConversation("c10")
		send(t, r, conv, "new")
		reply := send(t, r, conv, "tell me about a career in football")
		assert.Equal(t, tt.want, reply.Text)
		assert.NotContains(t, reply.Text, advisoryHint)
	}

	r := newRouter(t, nil)
	conv := models.NewConversation("c11")
	send(t, r, conv, "new")
	assert.Equal(t, advisoryNotConfiguredReply, send(t, r, conv, "hi").Text)
}

func TestResetAndEmptyMessage(t *testing.T) {
	r := newRouter(t, &fakeAdvisor{})
	conv := models.NewConversation("c12")
	send(t, r, conv, "new")
	send(t, r, conv, "player")
	require.NotNil(t, conv.Intake)

	before := len(conv.History)
	reply := send(t, r, conv, "   ")
	assert.Equal(t, emptyMessageReply, reply.Text)
	assert.Len(t, conv.History, before)

	assert.Equal(t, welcomeMessage, r.Reset(conv))
	assert.Nil(t, conv.Intake)
	assert.Equal(t, models.UserTypeUnknown, conv.UserType)
	assert.Len(t, conv.History, 1)
}
