package assistant

import (
	"context"
	"time"
)

type Role string

const (
	USER      Role = "user"
	ASSISTANT Role = "assistant"
	SYSTEM    Role = "system"
)

type AssistantMessage struct {
	Content   string
	CreatedAt time.Time
	MsgRole   Role
}

type AssistantInput struct {
	Msgs        []AssistantMessage
	Model       string
	MaxTokens   int64
	Temperature float64
}

type AssistantOutput struct {
	Id       string
	Model    string
	Response AssistantMessage
}

// Assistant is a hosted chat-completion backend.
type Assistant interface {
	ProcessPrompt(ctx context.Context, input AssistantInput) (*AssistantOutput, error)
	Name() string
}
