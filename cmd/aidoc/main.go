package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aidoc/cmd/aidoc/chat"
	"aidoc/internal/browser"
	llm "aidoc/internal/chat"
	"aidoc/internal/config"
	"aidoc/internal/export"
	"aidoc/internal/logging"
	"aidoc/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	modelName  string
	plainMode  bool
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aidoc",
	Short: "aidoc - chat with Gemini and export the answer as a PDF",
	Long: `aidoc is an interactive document generator.

Describe a document (resume, proposal, report...) and Gemini answers with
Markdown, rendered in the terminal. Follow-up prompts refine the same
document; /pdf [filename] exports the current version to a styled PDF.

Requires GEMINI_API_KEY in the environment or in a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", "", "Gemini model to use (overrides config and AIDOC_MODEL)")
	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "Use the line-mode interface even on a terminal")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to the log file")

	rootCmd.AddCommand(versionCmd)
}

func runInteractive(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if modelName != "" {
		cfg.LLM.Model = strings.TrimSpace(modelName)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	boot := logging.For(logger, logging.CategoryBoot)
	boot.Info("starting",
		zap.String("version", version),
		zap.String("model", cfg.LLM.Model),
		zap.String("config", configPath))

	client, err := llm.NewGeminiChat(ctx, llm.GeminiConfig{
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		SystemInstruction: cfg.LLM.SystemInstruction,
		Timeout:           cfg.GetLLMTimeout(),
	}, logger)
	if err != nil {
		boot.Error("chat setup failed", zap.Error(err))
		return err
	}
	boot.Info("chat session opened", zap.String("model", client.Model()))

	printer := browser.NewPrinter(browserConfig(cfg.Export.Browser), logger)
	defer func() {
		if err := printer.Shutdown(); err != nil {
			boot.Warn("browser shutdown failed", zap.Error(err))
		}
	}()

	exporter := export.New(printer, cfg.GetExportTimeout(), logger)
	sess := session.New(client, exporter, logger)
	boot.Info("session ready", zap.String("session", sess.ID()))

	err = chat.Run(ctx, sess, chat.Options{
		Plain:      plainMode || cfg.UI.Plain,
		Theme:      cfg.UI.Theme,
		WordWrap:   cfg.GetWordWrap(),
		DefaultPDF: cfg.Export.DefaultFilename,
	})
	boot.Info("stopped", zap.Bool("interrupted", ctx.Err() != nil), zap.Error(err))
	return err
}

func browserConfig(c config.BrowserConfig) browser.Config {
	return browser.Config{
		Bin:         c.Bin,
		DebuggerURL: c.DebuggerURL,
		NoSandbox:   c.NoSandbox,
		Flags:       append([]string(nil), c.Flags...),
	}
}

func main() {
	// A missing .env is fine; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Please set it with: export GEMINI_API_KEY='your_api_key_here'")
		}
		stop()
		os.Exit(1)
	}
}
