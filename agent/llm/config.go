package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
	promptx "github.com/tanpawarit/vessel-deadline-agent/agent/prompt"
	openrouterx "github.com/tanpawarit/vessel-deadline-agent/pkg/openrouter"
)

// Config is loaded with the OPENROUTER prefix. Model overrides the model
// named by the agent card.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true"`
	ModelNamespace     string        `envconfig:"MODEL_NAMESPACE" split_words:"true" default:"google"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	return nil
}

// ModelFor resolves the model name for card. Card models are bare names
// ("gemini-2.0-flash-lite"); OpenRouter wants them namespaced.
func (c Config) ModelFor(card promptx.AgentCard) string {
	if v := strings.TrimSpace(c.Model); v != "" {
		return v
	}
	modelName := strings.TrimSpace(card.Model)
	if modelName == "" || strings.Contains(modelName, "/") {
		return modelName
	}
	if ns := strings.Trim(strings.TrimSpace(c.ModelNamespace), "/"); ns != "" {
		return ns + "/" + modelName
	}
	return modelName
}

func (c Config) OpenRouterFor(card promptx.AgentCard) openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              c.ModelFor(card),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
