package intake

import (
	"fmt"
	"strings"
)

const (
	maxEchoedItems = 5

	fraudWarning = "**⚠️ Important: Please do not provide false information. You will be required to tender supporting documents later, so you are advised strictly against submitting fake data. Providing fake data will result in being blacklisted from the general football agency association for fraud.**"

	// UnexpectedStateMessage is returned whenever Advance is called outside the flow.
	UnexpectedStateMessage = "An unexpected state occurred. Please try clearing the chat and starting over, or clarify your intent."

	reaskMessage = "Please respond with 'Yes' to proceed with the current information, or 'No' to revise your input."
)

func promptLine(schema *Schema) string {
	return "**" + strings.Join(schema.Prompts(), ", ") + "**"
}

func exampleLine(schema *Schema) string {
	return fmt.Sprintf("Example: `%s`", schema.Example)
}

func renderStart(schema *Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s.** Please provide ALL the following details in ONE response, separated by commas, in this exact order:\n\n",
		schema.Emoji, schema.Title)
	b.WriteString(promptLine(schema))
	b.WriteString("\n\n")
	b.WriteString(fraudWarning)
	b.WriteString("\n\n")
	b.WriteString(exampleLine(schema))
	return b.String()
}

func renderRevise(schema *Schema) string {
	var b strings.Builder
	b.WriteString("Okay, please provide ALL the following details again, separated by commas, in this exact order. Make sure to adjust the problematic areas that were highlighted:\n\n")
	b.WriteString(promptLine(schema))
	b.WriteString("\n\n")
	b.WriteString(exampleLine(schema))
	return b.String()
}

func renderCountMismatch(schema *Schema, items Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ **Input Count Error:** Expected %d items, received %d.\n\n", len(schema.Fields), len(items))

	b.WriteString("**What you provided:**\n")
	for i, item := range items {
		if i == maxEchoedItems {
			break
		}
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, item)
	}
	if len(items) > maxEchoedItems {
		fmt.Fprintf(&b, "... and %d more items.\n", len(items)-maxEchoedItems)
	}

	b.WriteString("\n**What we need (in order):**\n")
	for i, p := range schema.Prompts() {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, p)
	}

	b.WriteString("\n**💡 Tip:** Make sure each piece of info is separated by a comma. Please copy your last message, fix the missing/extra items, and try again!")
	return b.String()
}

func writeBullets(b *strings.Builder, findings []Finding) {
	for _, f := range findings {
		fmt.Fprintf(b, "• %s\n", f.Message)
	}
}

func renderErrors(report *Report) string {
	var b strings.Builder
	b.WriteString("❌ **Please fix these issues:**\n\n")
	writeBullets(&b, report.Errors)
	if report.HasWarnings() {
		b.WriteString("\n⚠️ **Also note:**\n")
		writeBullets(&b, report.Warnings)
	}
	b.WriteString("\n**Please correct the issues and resubmit your information. You can copy/paste your last message and just fix the problematic parts.**")
	return b.String()
}

func renderWarnings(report *Report) string {
	var b strings.Builder
	b.WriteString("⚠️ **We've noted these points during our initial review:**\n\n")
	writeBullets(&b, report.Warnings)
	b.WriteString("\nAre you satisfied with this information, or would you like to revise your input? Please respond with 'Yes' or 'No'.")
	return b.String()
}
