// Package main provides the CLI entrypoint for typoeq.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typoeq/internal/config"
	"github.com/verte-zerg/typoeq/internal/dictionary"
	"github.com/verte-zerg/typoeq/internal/engine"
	"github.com/verte-zerg/typoeq/internal/logging"
	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
	"github.com/verte-zerg/typoeq/internal/stats"
	"github.com/verte-zerg/typoeq/internal/store"
	"github.com/verte-zerg/typoeq/internal/tui"
)

var (
	practiceDict        string
	practiceProfile     string
	practiceProfileFile string
	practicePhrases     bool
	practiceDebug       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typoeq",
		Short:         "Vocabulary typing trainer for bilingual dictionaries",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVarP(&practiceDict, "dict", "d", config.DefaultDictionaryPath(), "dictionary file (.xdxf)")
	rootCmd.Flags().StringVar(&practiceProfile, "profile", profile.DefaultName, "profile name")
	rootCmd.Flags().StringVar(&practiceProfileFile, "profile-file", config.DefaultProfilePath(), "profile file path")
	rootCmd.Flags().BoolVarP(&practicePhrases, "phrases", "p", false, "show example phrases for the current word")
	rootCmd.Flags().BoolVar(&practiceDebug, "debug", false, "write debug log to "+config.DefaultLogPath())

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &practiceDict, fileCfg.Practice.Dictionary)
	applyStringConfig(cmd, "profile", &practiceProfile, fileCfg.Practice.Profile)
	applyStringConfig(cmd, "profile-file", &practiceProfileFile, fileCfg.Practice.ProfileFile)
	applyBoolConfig(cmd, "phrases", &practicePhrases, fileCfg.Practice.Phrases)
	applyBoolConfig(cmd, "debug", &practiceDebug, fileCfg.Practice.Debug)

	cfg := model.Config{
		DictionaryPath: expandHome(practiceDict),
		ProfileName:    strings.TrimSpace(practiceProfile),
		ProfilePath:    expandHome(practiceProfileFile),
		ShowPhrases:    practicePhrases,
		Debug:          practiceDebug,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logOptions(cfg.Debug, fileCfg.Log))
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	dict, err := loadDictionary(ctx, logger, cfg.DictionaryPath)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("practice needs an interactive terminal")
	}

	profiles, persist := loadProfiles(logger, cfg.ProfilePath)
	prof := profiles.Profile(cfg.ProfileName)

	session, err := engine.NewSession(dict, prof, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(cfg, session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	summary := session.Summary()
	if persist {
		if err := profile.Save(profiles); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	} else {
		logErrf("Profile file %s could not be read; progress was not saved.\n", cfg.ProfilePath)
	}
	recordSession(ctx, logger, cfg, dict, session, summary)
	return printRunSummary(cmd.OutOrStdout(), summary)
}

func loadDictionary(ctx context.Context, logger *slog.Logger, path string) (*dictionary.Dictionary, error) {
	events := dictionary.LoadAsync(ctx, dictionary.DefaultRegistry(), path)
	dict, err := dictionary.Await(ctx, events, func(ev dictionary.Event) {
		attrs := []any{slog.String("event", ev.Kind.String()), slog.String("path", ev.Path)}
		if ev.Dictionary != nil {
			attrs = append(attrs,
				slog.Int("entries", len(ev.Dictionary.Entries())),
				slog.Int("words", len(ev.Dictionary.Words())),
				slog.Int("phrases", len(ev.Dictionary.Phrases())),
			)
		}
		logger.Debug("dictionary loader", attrs...)
	})
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("dictionary not found: %s", path)
		case errors.Is(err, dictionary.ErrNoParser):
			return nil, fmt.Errorf("failed to load dictionary %s: %w (supported: %s)",
				path, err, strings.Join(dictionary.DefaultRegistry().Extensions(), ", "))
		default:
			return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
		}
	}
	return dict, nil
}

// loadProfiles never fails: a missing or unreadable file starts a fresh one.
// persist is false when an existing file could not be read, so saving would
// overwrite profiles that were never loaded.
func loadProfiles(logger *slog.Logger, path string) (profiles *profile.File, persist bool) {
	profiles, err := profile.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("profile file not found; starting empty", slog.String("path", path))
			return profile.NewFile(path), true
		}
		logger.Warn("failed to load profiles; starting empty", slog.String("path", path), slog.Any("err", err))
		return profile.NewFile(path), false
	}
	return profiles, true
}

func recordSession(ctx context.Context, logger *slog.Logger, cfg model.Config, dict *dictionary.Dictionary, session *engine.Session, summary engine.Summary) {
	if summary.CharsTyped == 0 {
		return
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history db", slog.Any("err", err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close history db", slog.Any("err", cerr))
		}
	}()

	completed := session.CompletedWords()
	words := make([]model.WordStats, 0, len(completed))
	for word, n := range completed {
		words = append(words, model.WordStats{Word: word, Completions: n})
	}
	id, err := st.InsertSession(ctx, model.SessionStats{
		StartedAt:      summary.StartedAt,
		EndedAt:        summary.EndedAt,
		Profile:        session.Profile().Name,
		DictionaryPath: cfg.DictionaryPath,
		LangFrom:       dict.From(),
		LangTo:         dict.To(),
		Completed:      summary.Completed,
		CharsTyped:     summary.CharsTyped,
		CharsFailed:    summary.CharsFailed,
		DurationMs:     summary.Duration().Milliseconds(),
	}, words)
	if err != nil {
		logger.Warn("failed to save session", slog.Any("err", err))
		return
	}
	logger.Debug("session saved", slog.Int64("id", id), slog.Int("words", len(words)))
}

func printRunSummary(w io.Writer, summary engine.Summary) error {
	wpm, acc := stats.SessionMetrics(summary.Completed, summary.CharsTyped, summary.CharsFailed, summary.Duration().Milliseconds())
	_, err := fmt.Fprintf(w, "Completed %d words in %s · %.1f WPM · %.1f%% accuracy\n",
		summary.Completed, summary.Duration().Round(time.Second), wpm, acc*100)
	return err
}

func logOptions(debug bool, logCfg config.LogConfig) logging.Options {
	opts := logging.Options{Debug: debug, File: config.DefaultLogPath()}
	if logCfg.Level != nil {
		opts.Level = *logCfg.Level
	}
	if logCfg.File != nil && *logCfg.File != "" {
		opts.File = expandHome(*logCfg.File)
	}
	return opts
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typoeq configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# dict = %q               # Dictionary file (.xdxf)
# profile = %q            # Profile name
# profile-file = %q       # Profile file
# phrases = false         # Show example phrases for the current word
# debug = false           # Write debug log to %s

[log]
# level = "warn"          # stderr log level without --debug (debug, info, warn, error)
# file = %q               # Debug log path
`,
		"dict.xdxf",
		profile.DefaultName,
		config.DefaultProfilePath(),
		config.DefaultLogPath(),
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.DictionaryPath) == "" {
		return fmt.Errorf("--dict must not be empty")
	}
	if cfg.ProfileName == "" {
		return fmt.Errorf("--profile must not be empty")
	}
	if strings.ContainsAny(cfg.ProfileName, "[]\n") {
		return fmt.Errorf("--profile must not contain brackets or newlines")
	}
	if strings.TrimSpace(cfg.ProfilePath) == "" {
		return fmt.Errorf("--profile-file must not be empty")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
