package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"github.com/abinishjha1/ai-interviewHackathon/internal/ai/gemini"
	"github.com/abinishjha1/ai-interviewHackathon/internal/logger"
	"github.com/abinishjha1/ai-interviewHackathon/internal/secrets"
	"github.com/abinishjha1/ai-interviewHackathon/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview websocket server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (overrides server.address from the config)")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

// serve is the main command for the backend.
func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ai-interviewer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	interviewer, err := newInterviewer(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building the interviewer",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini' keys in the configuration file"),
		)
	}

	srvConfig := server.Config{}
	if config.Server != nil {
		srvConfig.Address = config.Server.Address
	}
	if config.Interview != nil {
		srvConfig.QuestionBudget = config.Interview.QuestionBudget
	}

	srv := server.New(srvConfig, interviewer, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newInterviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Interviewer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	return gemini.NewInterviewer(generator, log, cfg.Gemini.MaxLogLength, cfg.Gemini.Timeout), nil
}
