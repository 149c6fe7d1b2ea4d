package conversationrouter

import "academy-assistant/internal/common/keyword"

const (
	welcomeMessage = "Welcome to QUCOON Football Academy! Are you an **existing** member (with a talent ID) or **new** to our academy?"

	talentIDPrompt = "Please enter your QUCOON Academy talent ID (starts with P for players or C for coaches)."

	generalInquiryWelcome = "Welcome to QUCOON Football Academy! How can I help you today? Feel free to ask about our programs, " +
		"facilities, or anything else about football careers. We're here to guide you."

	clarifyUserType = "To provide you with the best assistance, could you please confirm if you are an **existing** QUCOON " +
		"Academy player/coach with a talent ID, or if you are **new** to our academy and interested in joining?"

	welcomeBackFormat  = "🎯 Welcome back, %s! How can I help your career today?"
	idNotRecognized    = "ID not recognized. Please re-enter or say 'new' to join."
	lookupUnavailable  = "Sorry, I couldn't check that talent ID right now. Please try again in a moment."
	applicationFormFmt = "Here is the link to the official application form: [Application Form](%s)"

	advisoryHint = "\n\nWhen you're ready, let me know if you're interested in **Player Development** or **Coaching Development**."

	advisoryTimeoutReply       = "Sorry, the career assistant is taking too long to respond. Please try again."
	advisoryFailedReply        = "Sorry, there was an error reaching the career assistant. Please try again."
	advisoryNotConfiguredReply = "Career advice is unavailable because no advisory API key is configured."
	emptyMessageReply          = "Please type a message so I can help."

	statusWelcome        = "👋 Welcome! Are you **Existing** (with ID) or **New**?"
	statusMentorship     = "🎯 Mentorship Mode. Ask about your career!"
	statusSelecting      = "Choose Player or Coach Development."
	statusGeneralInquiry = "Ask about QUCOON Academy or your football career!"
	statusApplicant      = "📝 Application stage. Ask for the form or anything about your career."
	statusAwaitingInput  = " Please provide ALL details in ONE message."
)

// hintTriggers are matched as plain substrings so plurals count.
var hintTriggers = []string{"academy", "program", "career"}

var (
	talentIDKeywords  = keyword.NewSet("talent id", "talentid", "your id", "player id", "coach id", "existing")
	newUserKeywords   = keyword.NewSet("new", "join", "enroll", "no id", "i'm new")
	nextStageKeywords = keyword.NewSet("next stage", "next step", "recruitment form", "trials form", "progress", "application", "form")
)
