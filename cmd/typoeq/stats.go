package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typoeq/internal/config"
	"github.com/verte-zerg/typoeq/internal/model"
	"github.com/verte-zerg/typoeq/internal/profile"
	"github.com/verte-zerg/typoeq/internal/stats"
	"github.com/verte-zerg/typoeq/internal/statsui"
	"github.com/verte-zerg/typoeq/internal/store"
)

const defaultCurveWindow = 10

var (
	statsProfile     string
	statsProfileFile string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice history and word mastery",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsProfile, "profile", "", "profile filter (default: all sessions, default profile mastery)")
	cmd.Flags().StringVar(&statsProfileFile, "profile-file", config.DefaultProfilePath(), "profile file path")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "profile-file", &statsProfileFile, fileCfg.Practice.ProfileFile)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}

	cfg := model.StatsConfig{
		Profile:     statsProfile,
		ProfilePath: expandHome(statsProfileFile),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	profiles, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logErrf("failed to load profiles: %v\n", err)
		}
		profiles = profile.NewFile(cfg.ProfilePath)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	stdout := int(os.Stdout.Fd())
	if statsPlain || !term.IsTerminal(stdout) {
		width := 0
		if w, _, err := term.GetSize(stdout); err == nil {
			width = w
		}
		return renderPlainStats(cmd.Context(), cmd.OutOrStdout(), st, profiles, cfg, width)
	}

	program := tea.NewProgram(statsui.NewModel(st, profiles, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(ctx context.Context, w io.Writer, st *store.Store, profiles *profile.File, cfg model.StatsConfig, width int) error {
	name := cfg.Profile
	if name == "" {
		name = profile.DefaultName
	}
	var learnt map[string]int
	if p, ok := profiles.Profiles[name]; ok {
		learnt = p.WordsLearnt
	}
	report, err := stats.BuildReport(ctx, st, cfg, learnt)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if err := stats.RenderCurves(w, report.Sessions, cfg.CurveWindow, width); err != nil {
		return err
	}
	return stats.RenderWordTable(w, report.Mastery)
}

func newProfilesCmd() *cobra.Command {
	var profileFile string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List profiles and their mastery counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyStringConfig(cmd, "profile-file", &profileFile, fileCfg.Practice.ProfileFile)
			return runProfilesCmd(cmd.Context(), cmd.OutOrStdout(), expandHome(profileFile))
		},
	}
	cmd.Flags().StringVar(&profileFile, "profile-file", config.DefaultProfilePath(), "profile file path")
	return cmd
}

func runProfilesCmd(ctx context.Context, w io.Writer, path string) error {
	profiles, err := profile.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logErrf("No profiles found at %s. Practice once to create one.\n", path)
			return fmt.Errorf("profile file does not exist")
		}
		return err
	}

	withHistory := map[string]bool{}
	if st, err := store.Open(config.DefaultDBPath()); err == nil {
		names, lerr := st.ListProfiles(ctx)
		if lerr != nil {
			logErrf("failed to list session history: %v\n", lerr)
		}
		for _, n := range names {
			withHistory[n] = true
		}
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}

	return writeProfiles(w, profiles, withHistory)
}

func writeProfiles(w io.Writer, profiles *profile.File, withHistory map[string]bool) error {
	for _, name := range profiles.Names() {
		levels := stats.LevelCounts(profiles.Profiles[name].WordsLearnt)
		history := ""
		if withHistory[name] {
			history = "  (history)"
		}
		if _, err := fmt.Fprintf(w, "%s: %d words, %d learnt, %d seen%s\n",
			name, len(profiles.Profiles[name].WordsLearnt), levels[profile.LevelLearnt], levels[profile.LevelSeen], history); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
