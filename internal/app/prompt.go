package app

import "strings"

// BuildPrompt assembles the final prompt: persona preamble first, then the
// document context verbatim, then the question verbatim. Pure string template,
// no truncation.
func BuildPrompt(persona, contextText, question string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nCONTEXTO:\n")
	b.WriteString(contextText)
	b.WriteString("\n\nPREGUNTA:\n")
	b.WriteString(question)
	b.WriteString("\n\nRESPUESTA DE B-ONE:\n")
	return b.String()
}
