package openai

import (
	"fmt"
	"strings"

	"github.com/kuralverse/kuralsearch/ai"
)

// buildChatSystemPrompt assembles the system prompt for grounded responses.
// The retrieved verses are inlined as context so the model answers from the
// corpus rather than from memory.
func buildChatSystemPrompt(grounding []ai.GroundingVerse) string {
	var b strings.Builder

	b.WriteString(`You are a thoughtful guide to the Thirukkural, the classical Tamil text of 1330 couplets on virtue, wealth, and love by the poet Thiruvalluvar.

Answer the user's question using the verses provided below. When you cite a verse, refer to it as "Verse N" so the reference can be recognized. If the provided verses do not cover the question, say so honestly rather than inventing verses. Keep answers concise and grounded.`)

	if len(grounding) == 0 {
		b.WriteString("\n\nNo verses were retrieved for this question. Answer from general knowledge of the Thirukkural's themes, and say that no specific verse was found.")
		return b.String()
	}

	b.WriteString("\n\nRelevant verses:\n")
	for _, verse := range grounding {
		fmt.Fprintf(&b, "\nVerse %d (Chapter %d: %s)\n%s\n", verse.Number, verse.Chapter, verse.ChapterName, verse.Text)
		if verse.Explanation != "" {
			fmt.Fprintf(&b, "Explanation: %s\n", verse.Explanation)
		}
	}

	return b.String()
}

// cannedResponseMessage is returned when the chat model is unreachable so a
// conversation turn still gets an answer.
const cannedResponseMessage = "I could not reach the language model just now, but the verses I found may still help. The Thirukkural speaks in short couplets, so even a single verse repays a slow reading."
