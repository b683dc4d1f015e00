package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
	"gopkg.in/yaml.v3"
)

//go:embed template/vessel_deadline_agent.yaml
var vesselDeadlineAgentRaw []byte

// AgentCard is the declarative description of the agent: who it is, which
// model backs it and how it should use its tools.
type AgentCard struct {
	Name        string `yaml:"name"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
	Instruction string `yaml:"instruction"`
}

// LoadAgentCard returns the embedded vessel deadline agent card.
func LoadAgentCard() (AgentCard, error) {
	return ParseAgentCard(vesselDeadlineAgentRaw)
}

func ParseAgentCard(raw []byte) (AgentCard, error) {
	var card AgentCard
	if err := yaml.Unmarshal(raw, &card); err != nil {
		return AgentCard{}, fmt.Errorf("%w: decode agent card: %v", contractx.ErrPromptMissing, err)
	}

	card.Name = strings.TrimSpace(card.Name)
	card.Model = strings.TrimSpace(card.Model)
	card.Description = strings.TrimSpace(card.Description)
	card.Instruction = strings.TrimSpace(card.Instruction)

	if card.Name == "" {
		return AgentCard{}, fmt.Errorf("%w: agent card name is empty", contractx.ErrPromptMissing)
	}
	if card.Instruction == "" {
		return AgentCard{}, fmt.Errorf("%w: agent card instruction is empty", contractx.ErrPromptMissing)
	}
	return card, nil
}
