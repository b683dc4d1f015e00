package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	deadlinex "github.com/tanpawarit/vessel-deadline-agent/agent/agents/deadline"
	llmx "github.com/tanpawarit/vessel-deadline-agent/agent/llm"
	promptx "github.com/tanpawarit/vessel-deadline-agent/agent/prompt"
	toolx "github.com/tanpawarit/vessel-deadline-agent/agent/tool"
	configx "github.com/tanpawarit/vessel-deadline-agent/pkg/config"
	logx "github.com/tanpawarit/vessel-deadline-agent/pkg/logger"
	maerskx "github.com/tanpawarit/vessel-deadline-agent/pkg/maersk"
	openrouterx "github.com/tanpawarit/vessel-deadline-agent/pkg/openrouter"
)

var (
	envFile string

	deadlineQuery maerskx.DeadlineQuery
)

var rootCmd = &cobra.Command{
	Use:           "vessel-deadline-agent",
	Short:         "Answer questions about Maersk vessel deadlines",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return fmt.Errorf("load log config: %w", err)
		}
		logx.Init(*logCfg)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the agent a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var vesselCmd = &cobra.Command{
	Use:   "vessel <name>",
	Short: "Resolve a vessel name to its IMO number",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVessel,
}

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines",
	Short: "Report shipment deadlines for a vessel voyage",
	RunE:  runDeadlines,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed to the model",
	RunE:  runTools,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the configured model is available",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")

	deadlinesCmd.Flags().StringVar(&deadlineQuery.ISOCountryCode, "country", "", "ISO 3166-1 alpha-2 country code of the port of load")
	deadlinesCmd.Flags().StringVar(&deadlineQuery.PortOfLoad, "port", "", "name or code of the loading port")
	deadlinesCmd.Flags().StringVar(&deadlineQuery.VesselIMONumber, "imo", "", "IMO number of the vessel")
	deadlinesCmd.Flags().StringVar(&deadlineQuery.Voyage, "voyage", "", "voyage identifier")
	for _, name := range []string{"country", "port", "imo", "voyage"} {
		_ = deadlinesCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(askCmd, vesselCmd, deadlinesCmd, toolsCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newMaerskClient() (*maerskx.Client, error) {
	cfg, err := configx.New[maerskx.Config]("MAERSK")
	if err != nil {
		return nil, fmt.Errorf("load maersk config: %w", err)
	}
	return maerskx.NewClient(*cfg)
}

func loadModelConfig() (promptx.AgentCard, openrouterx.Config, error) {
	card, err := promptx.LoadAgentCard()
	if err != nil {
		return promptx.AgentCard{}, openrouterx.Config{}, err
	}
	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return promptx.AgentCard{}, openrouterx.Config{}, fmt.Errorf("load llm config: %w", err)
	}
	if err := llmCfg.Validate(); err != nil {
		return promptx.AgentCard{}, openrouterx.Config{}, err
	}
	return card, llmCfg.OpenRouterFor(card), nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := logx.WithRequestID(cmd.Context(), uuid.NewString())

	client, err := newMaerskClient()
	if err != nil {
		return err
	}
	card, modelCfg, err := loadModelConfig()
	if err != nil {
		return err
	}
	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		return err
	}

	infos, executor := toolx.BuildForAgent(client, client)
	agent, err := deadlinex.New(ctx, chatModel, card, infos, executor)
	if err != nil {
		return err
	}

	reply, err := agent.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
	return err
}

func runVessel(cmd *cobra.Command, args []string) error {
	client, err := newMaerskClient()
	if err != nil {
		return err
	}
	imo, err := client.VesselIMO(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), imo)
	return err
}

func runDeadlines(cmd *cobra.Command, args []string) error {
	client, err := newMaerskClient()
	if err != nil {
		return err
	}
	report, err := toolx.ReportDeadlines(cmd.Context(), client, deadlineQuery)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func runTools(cmd *cobra.Command, args []string) error {
	type toolView struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	infos := toolx.Infos()
	views := make([]toolView, 0, len(infos))
	for _, info := range infos {
		views = append(views, toolView{Name: info.Name, Description: info.Desc})
	}
	return writeJSON(cmd.OutOrStdout(), views)
}

func runStatus(cmd *cobra.Command, args []string) error {
	card, modelCfg, err := loadModelConfig()
	if err != nil {
		return err
	}
	m, err := openrouterx.CheckModel(cmd.Context(), openrouterx.NewClient(modelCfg), modelCfg.Model)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "agent=%s model=%s owned_by=%s: ok\n", card.Name, m.ID, m.OwnedBy)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
