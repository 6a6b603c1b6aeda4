package types

import "github.com/xpanvictor/rehearse/pkg/assistant"

// ConversationTurn is one prior exchange entry as held by the client.
// @Description A single user or assistant turn
type ConversationTurn struct {
	Role    assistant.Role `json:"role" example:"user"`
	Content string         `json:"content" example:"I finished the login refactor this sprint."`
}

// ConversationHistory is owned by the client and echoed back verbatim.
// Ordering is never validated or repaired.
type ConversationHistory []ConversationTurn

// Extend returns a new history with the user turn and the assistant reply
// appended. The receiver is left untouched.
func (h ConversationHistory) Extend(userText, reply string) ConversationHistory {
	out := make(ConversationHistory, 0, len(h)+2)
	out = append(out, h...)
	out = append(out,
		ConversationTurn{Role: assistant.USER, Content: userText},
		ConversationTurn{Role: assistant.ASSISTANT, Content: reply},
	)
	return out
}
