package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordfill/internal/app"
	"github.com/abhisek/wordfill/internal/config"
	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/llm"
	"github.com/abhisek/wordfill/internal/sentences"
	"github.com/abhisek/wordfill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wordfill",
	Short: "Fill-in-the-blank vocabulary quiz",
	Long: "wordfill asks you to complete sentences with the missing word and " +
		"tracks how well you know every word you have met.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides WORDFILL_CONFIG)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for word files and database (overrides WORDFILL_DATA_DIR)")
	rootCmd.PersistentFlags().String("backend", "", "Ledger backend: text, sqlite or memory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sentencesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies the
// persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	} else if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return cfg, nil
}

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	ledger  *ledger.Ledger
	logFile io.Closer

	// text is set when the ledger uses the text backend.
	text *store.TextRepo
}

// openEnv loads config, sets up logging, opens the database and builds the
// ledger on the configured backend. With toFile set, logs go to the data
// directory instead of stderr. Callers must Close it.
func openEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	logOut := cmd.ErrOrStderr()
	if toFile {
		f, err := app.OpenLogFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.logFile, logOut = f, f
	}
	e.logger = app.NewLogger(cfg.Log, logOut)

	e.store, err = store.Open(store.DBPath(cfg.DataDir))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	var repo store.LedgerRepo
	switch cfg.Backend {
	case config.BackendSQLite:
		repo = e.store.LedgerRepo()
	case config.BackendMemory:
		repo = store.NewMemoryRepo()
	default:
		e.text = store.NewTextRepo(cfg.DataDir)
		repo = e.text
	}

	e.ledger = ledger.New(commandContext(cmd), repo, e.logger)
	e.logger.Debug("environment ready", "data_dir", cfg.DataDir, "backend", cfg.Backend)
	return e, nil
}

func (e *env) Close() error {
	var err error
	if e.store != nil {
		err = e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
	return err
}

// SentencesFile is the extra sentence bank in the data directory used when
// no sentences path is configured.
const SentencesFile = "sentences.json"

// sentencesPath returns the extra bank path and whether it was configured
// explicitly.
func (e *env) sentencesPath() (string, bool) {
	if e.cfg.SentencesPath != "" {
		return e.cfg.SentencesPath, true
	}
	return filepath.Join(e.cfg.DataDir, SentencesFile), false
}

// source builds the question source: the bundled bank merged with the extra
// bank, fronted by the LLM generator when a provider is set. The second
// return value describes the source for display.
func (e *env) source(ctx context.Context) (sentences.Source, string, error) {
	bank := sentences.DefaultBank()

	path, explicit := e.sentencesPath()
	if _, statErr := os.Stat(path); statErr == nil || explicit {
		extra, err := sentences.LoadBank(path)
		if err != nil {
			return nil, "", fmt.Errorf("load sentences: %w", err)
		}
		added := bank.Merge(extra)
		e.logger.Info("extra sentences loaded", "path", path, "added", added)
	}

	if !e.cfg.LLM.Enabled() {
		return bank, fmt.Sprintf("sentences: bank (%d)", bank.Len()), nil
	}

	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
	if err != nil {
		return nil, "", fmt.Errorf("LLM provider: %w", err)
	}
	gen := sentences.NewLLMGenerator(provider, sentences.DefaultGeneratorConfig())
	name := fmt.Sprintf("sentences: %s %s, bank fallback", e.cfg.LLM.Provider, provider.ModelID())
	return sentences.NewFallback(gen, bank, e.logger), strings.TrimSpace(name), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
