package assistant

import "time"

func NewAssistantInput(
	msgs []AssistantMessage,
	model string,
	maxTokens int64,
	temperature float64,
) AssistantInput {
	return AssistantInput{
		Msgs:        msgs,
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

func NewMessage(role Role, content string) AssistantMessage {
	return AssistantMessage{
		Content:   content,
		CreatedAt: time.Now(),
		MsgRole:   role,
	}
}

// SplitSystem lifts a leading system message out of the dialogue. Providers
// whose APIs carry the system prompt out of band (Anthropic, Gemini) use this.
// Later system entries stay where they are.
func SplitSystem(msgs []AssistantMessage) (string, []AssistantMessage) {
	if len(msgs) == 0 || msgs[0].MsgRole != SYSTEM {
		return "", msgs
	}
	return msgs[0].Content, msgs[1:]
}
