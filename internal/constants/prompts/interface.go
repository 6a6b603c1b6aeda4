package prompts

import "fmt"

type PromptDefinition struct {
	Content string
	Version float32
}

type SYS_PROMPT struct {
	Intent         string
	CurrentVersion float32
	Items          map[float32]PromptDefinition // version-content
}

func (sp *SYS_PROMPT) GetCurrentPrompt() PromptDefinition {
	return sp.Items[sp.CurrentVersion]
}

// Render fills the prompt's verbs with args.
func (pd PromptDefinition) Render(args ...any) string {
	return fmt.Sprintf(pd.Content, args...)
}
