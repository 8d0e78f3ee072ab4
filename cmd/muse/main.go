// Package main provides the CLI entrypoint for muse.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/muse/internal/config"
	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/devices"
	"github.com/verte-zerg/muse/internal/fetch"
	"github.com/verte-zerg/muse/internal/generator"
	"github.com/verte-zerg/muse/internal/historyui"
	"github.com/verte-zerg/muse/internal/model"
	"github.com/verte-zerg/muse/internal/poem"
	"github.com/verte-zerg/muse/internal/stats"
	"github.com/verte-zerg/muse/internal/store"
	"github.com/verte-zerg/muse/internal/tui"
)

const (
	defaultPoet  = "Emily Dickinson"
	defaultLines = 10
	maxLines     = 50
	defaultTop   = 20
)

var (
	genPoet    string
	genCorpus  string
	genLines   int
	genDepth   int
	genDevices []string
	genSeed    int64
	genPlain   bool
	genSave    bool

	historyPoet  string
	historySince string
	historyLast  int
	historyJSON  bool
	historyPlain bool
	historyID    string

	inspectPoet   string
	inspectCorpus string
	inspectDepth  int
	inspectTop    int

	fetchPoet  string
	fetchURL   string
	fetchForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "muse",
		Short:         "Markov poem generator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGenerateCmd,
	}

	rootCmd.Flags().StringVar(&genPoet, "poet", defaultPoet, "poet whose corpus to use")
	rootCmd.Flags().StringVar(&genCorpus, "corpus", "", "corpus file path (overrides --poet lookup)")
	rootCmd.Flags().IntVar(&genLines, "lines", defaultLines, fmt.Sprintf("number of lines (1-%d)", maxLines))
	rootCmd.Flags().IntVar(&genDepth, "depth", corpus.DefaultDepth, "context key length")
	rootCmd.Flags().StringArrayVar(&genDevices, "device", nil, "poetic device to apply (repeatable): Alliteration, Repetition, Rhyme, Metaphor")
	rootCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().BoolVar(&genPlain, "plain", false, "print the poem instead of opening the viewer")
	rootCmd.Flags().BoolVar(&genSave, "save", false, "save the printed poem to history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPoetsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newFetchCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "poet", &genPoet, fileCfg.Poem.Poet)
	applyIntConfig(cmd, "lines", &genLines, fileCfg.Poem.Lines)
	applyIntConfig(cmd, "depth", &genDepth, fileCfg.Poem.Depth)
	applyStringsConfig(cmd, "device", &genDevices, fileCfg.Poem.Devices)
	applyInt64Config(cmd, "seed", &genSeed, fileCfg.Poem.Seed)

	cfg := model.Config{
		Poet:    genPoet,
		Lines:   genLines,
		Depth:   genDepth,
		Devices: genDevices,
		Seed:    genSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	for _, name := range unknownDevices(cfg.Devices) {
		logErrf("ignoring unknown device %q\n", name)
	}
	cfg.CorpusPath, err = resolveCorpusPath(fileCfg, cfg.Poet, genCorpus)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	table, err := loadTable(cfg.Poet, cfg.CorpusPath, cfg.Depth)
	if err != nil {
		return err
	}

	interactive := !genPlain && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive {
		return printPoem(cmd.OutOrStdout(), cfg, poem.NewComposer(generator.NewSeeded(cfg.Seed)), table)
	}

	var saver tui.Saver
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db, saving disabled: %v\n", err)
	} else {
		saver = st
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}
	viewer := tui.NewModel(cfg, saver, table)
	program := tea.NewProgram(viewer, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func printPoem(w io.Writer, cfg model.Config, composer *poem.Composer, table *corpus.Table) error {
	set := devices.Parse(cfg.Devices)
	text, err := composer.Compose(table, cfg.Lines, set)
	if err != nil {
		return composeError(cfg, err)
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !genSave {
		return nil
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
	rec, err := st.SavePoem(context.Background(), model.PoemRecord{
		Poet:       cfg.Poet,
		CorpusPath: cfg.CorpusPath,
		Text:       text,
		Devices:    set.Names(),
		Lines:      cfg.Lines,
		Depth:      cfg.Depth,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to save poem: %w", err)
	}
	logErrf("Saved poem %s\n", rec.ID)
	return nil
}

func composeError(cfg model.Config, err error) error {
	switch {
	case errors.Is(err, poem.ErrEmptyModel):
		return fmt.Errorf("no transitions in %s at depth %d; try a smaller --depth: %w", cfg.CorpusPath, cfg.Depth, err)
	case errors.Is(err, poem.ErrNoLines):
		return fmt.Errorf("every line from %s was too short; try another --seed: %w", cfg.CorpusPath, err)
	default:
		return err
	}
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
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPoetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poets",
		Short: "List configured poets and their corpora",
		Args:  cobra.NoArgs,
		RunE:  runPoetsCmd,
	}
}

func runPoetsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	saved := map[string]bool{}
	if st, err := store.Open(config.DefaultDBPath()); err != nil {
		logErrf("failed to open db, saved poems not shown: %v\n", err)
	} else {
		names, err := st.ListPoets(context.Background())
		if err != nil {
			logErrf("failed to list saved poets: %v\n", err)
		}
		for _, name := range names {
			saved[name] = true
		}
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	missing, err := writePoets(cmd.OutOrStdout(), fileCfg, config.DefaultCorpusDir(), saved)
	if err != nil {
		return err
	}
	if missing > 0 {
		logErrln("Download a corpus with: muse fetch --poet <name> --url <url>")
	}
	return nil
}

// writePoets lists each known poet with corpus status, whether history holds
// poems for them, and the corpus path. It returns the number of missing
// corpora.
func writePoets(w io.Writer, fileCfg config.FileConfig, dir string, saved map[string]bool) (int, error) {
	missing := 0
	for _, name := range fileCfg.PoetNames() {
		path, _ := fileCfg.ResolveCorpus(name, dir)
		status := "ok"
		if _, err := os.Stat(path); err != nil {
			status = "missing"
			missing++
		}
		history := "-"
		if saved[name] {
			history = "saved"
		}
		if _, err := fmt.Fprintf(w, "%-24s %-8s %-6s %s\n", name, status, history, path); err != nil {
			return missing, fmt.Errorf("failed to write output: %w", err)
		}
	}
	return missing, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved poems",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyPoet, "poet", "", "poet filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N poems")
	cmd.Flags().BoolVar(&historyJSON, "json", false, "print poems as JSON")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a table instead of opening the browser")
	cmd.Flags().StringVar(&historyID, "id", "", "print a single saved poem")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseSince(historySince)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	cfg := model.HistoryConfig{Poet: historyPoet, Since: since, Last: historyLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	switch {
	case historyID != "":
		return writeSavedPoem(ctx, out, st, historyID)
	case historyJSON:
		poems, err := st.ListPoems(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to list poems: %w", err)
		}
		return writeJSON(out, poems)
	case historyPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		report, err := stats.BuildReport(ctx, st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build history: %w", err)
		}
		return stats.RenderHistory(out, report)
	}

	browser := historyui.NewModel(st, cfg)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

type poemGetter interface {
	GetPoem(ctx context.Context, id string) (model.PoemRecord, error)
}

func writeSavedPoem(ctx context.Context, w io.Writer, st poemGetter, id string) error {
	rec, err := st.GetPoem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no saved poem with id %q (see: muse history)", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load poem: %w", err)
	}
	logErrf("%s, %s, seed %d\n", rec.Poet, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Seed)
	if _, err := fmt.Fprintln(w, rec.Text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, poems []model.PoemRecord) error {
	if poems == nil {
		poems = []model.PoemRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(poems); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show transition model statistics",
		Args:  cobra.NoArgs,
		RunE:  runInspectCmd,
	}
	cmd.Flags().StringVar(&inspectPoet, "poet", defaultPoet, "poet whose corpus to inspect")
	cmd.Flags().StringVar(&inspectCorpus, "corpus", "", "corpus file path (overrides --poet lookup)")
	cmd.Flags().IntVar(&inspectDepth, "depth", corpus.DefaultDepth, "context key length")
	cmd.Flags().IntVar(&inspectTop, "top", defaultTop, "number of contexts to list")
	return cmd
}

func runInspectCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "poet", &inspectPoet, fileCfg.Poem.Poet)
	applyIntConfig(cmd, "depth", &inspectDepth, fileCfg.Poem.Depth)
	if inspectDepth < 1 {
		return fmt.Errorf("--depth must be > 0")
	}
	if inspectTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	path, err := resolveCorpusPath(fileCfg, inspectPoet, inspectCorpus)
	if err != nil {
		return err
	}
	table, err := loadTable(inspectPoet, path, inspectDepth)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Corpus: %s\n\n", path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSummary(out, stats.Summarize(table)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if inspectTop == 0 || table.Empty() {
		return nil
	}
	if err := stats.RenderContextTable(out, stats.TopContexts(table, inspectTop)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a poet corpus",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchPoet, "poet", "", "poet the corpus belongs to")
	cmd.Flags().StringVar(&fetchURL, "url", "", "plain-text (or .gz) corpus URL")
	cmd.Flags().BoolVar(&fetchForce, "force", false, "overwrite an existing corpus")
	_ = cmd.MarkFlagRequired("poet")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runFetchCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := config.DefaultCorpusDir()
	dest, known := fileCfg.ResolveCorpus(fetchPoet, dir)
	if !known {
		dest = filepath.Join(dir, corpusFileName(fetchPoet))
	}

	logErrf("Fetching %s...\n", fetchURL)
	res, err := fetch.Download(context.Background(), fetchURL, dest, fetchForce)
	if err != nil {
		if errors.Is(err, fetch.ErrExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return fmt.Errorf("failed to fetch corpus: %w", err)
	}
	logErrf("Wrote %s (%d words)\n", res.Path, res.Tokens)
	if !known {
		logErrf("Add it to your config to use it:\n\n[poets]\n%q = %q\n", fetchPoet, filepath.Base(dest))
	}
	return nil
}

func loadTable(poet, path string, depth int) (*corpus.Table, error) {
	text, err := corpus.ReadText(path)
	if err != nil {
		return nil, corpusLoadError(poet, path, err)
	}
	return corpus.Build(text, depth), nil
}

func resolveCorpusPath(fileCfg config.FileConfig, poet, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	path, ok := fileCfg.ResolveCorpus(poet, config.DefaultCorpusDir())
	if !ok {
		return "", fmt.Errorf("unknown poet %q (known: %s)", poet, strings.Join(fileCfg.PoetNames(), ", "))
	}
	return path, nil
}

func corpusLoadError(poet, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load corpus: %v", err),
		fmt.Sprintf("expected corpus for %s at: %s", poet, path),
		"Run: muse poets",
		fmt.Sprintf("Download: muse fetch --poet %q --url <url>", poet),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

// corpusFileName derives a file name for a poet without a configured corpus.
func corpusFileName(poet string) string {
	fields := strings.FieldsFunc(strings.ToLower(poet), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "corpus.txt"
	}
	return strings.Join(fields, "-") + ".txt"
}

func parseSince(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return &parsed, nil
}

func unknownDevices(names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := devices.Lookup(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# muse configuration
# Uncomment a value to enable it. CLI flags override config values.

[poem]
# poet = %q    # Poet whose corpus to use
# lines = %d                  # Number of lines (1-%d)
# depth = %d                   # Context key length
# devices = ["Rhyme"]         # Alliteration, Repetition, Rhyme, Metaphor
# seed = 0                    # Random seed (0 picks one per run)

[poets]
# Poet name to corpus file. Relative paths are resolved against
# %s
# "Sara Teasdale" = "teasdale.txt"
`,
		defaultPoet,
		defaultLines,
		maxLines,
		corpus.DefaultDepth,
		config.DefaultCorpusDir(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Lines <= 0 {
		return fmt.Errorf("--lines must be > 0")
	}
	if cfg.Lines > maxLines {
		return fmt.Errorf("--lines must be <= %d", maxLines)
	}
	if cfg.Depth <= 0 {
		return fmt.Errorf("--depth must be > 0")
	}
	if strings.TrimSpace(cfg.Poet) == "" {
		return fmt.Errorf("--poet must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
