package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	coreapp "inscope/internal/core/app"
	"inscope/internal/core/config"
	"inscope/internal/engine/symbols"
	"inscope/internal/shared/observability"
	"inscope/internal/shared/util"
	"inscope/internal/ui/report"
)

func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("inscope v%s\n", versionString)
		return 0
	}

	cleanupLogs := configureLogging(opts.ui, opts.verbose)
	defer cleanupLogs()

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to detect working directory", "error", err)
		return 1
	}

	cfg, err := loadConfig(opts.configPath, cwd)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	if err := applyModeOptions(&opts, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(context.Background(), cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			return 1
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	analysis, err := initializeAnalysis(cfg, coreAnalysisFactory{})
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer func() {
		_ = analysis.Close(context.Background())
	}()

	scan, err := analysis.RunScan(context.Background())
	if err != nil {
		slog.Error("initial scan failed", "error", err)
		return 1
	}

	if cfg.Observability.Addr != "" {
		server := NewObservabilityServer(cfg.Observability.Addr, coreapp.NewHealthService(analysis.Unwrap()))
		if err := server.Start(context.Background()); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			_ = server.Stop(context.Background())
		}()
	}

	if stop, code := runSingleCommand(analysis, opts); stop {
		return code
	}

	if err := writeReports(analysis, opts); err != nil {
		slog.Error("failed to write reports", "error", err)
		return 1
	}

	if !opts.ui {
		printSummary(analysis, scan)
	}

	if opts.once {
		return 0
	}

	if err := analysis.Unwrap().StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}

	if opts.ui {
		if err := runUI(analysis.Unwrap()); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	select {}
}

func runSingleCommand(analysis *coreapp.AnalysisService, opts cliOptions) (bool, int) {
	if analysis == nil {
		fmt.Fprintln(os.Stderr, "analysis service unavailable")
		return true, 1
	}
	ctx := context.Background()

	if opts.resolve != "" {
		kinds, err := parseKinds(opts.resolveKinds)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return true, 1
		}
		results, err := analysis.ResolveName(ctx, opts.resolveIn, opts.resolve, kinds)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return true, 1
		}
		if len(results) == 0 {
			fmt.Printf("%s: no import in %s contributes a declaration\n", opts.resolve, opts.resolveIn)
			return true, 0
		}
		for _, res := range results {
			fmt.Printf("%s (%s) via import %s\n",
				res.Entity.DeclaredName(),
				res.Entity.DeclaredKind(),
				res.Via.ReferenceText(),
			)
		}
		return true, 0
	}

	if opts.unused {
		rows, err := analysis.UnusedImports(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return true, 1
		}
		fmt.Printf("Unused imports (%d):\n", len(rows))
		for _, row := range rows {
			alias := ""
			if row.Alias != "" {
				alias = " as " + row.Alias
			}
			fmt.Printf("  %s: %s%s [%s, confidence=%s]\n", row.File, row.Reference, alias, row.Kind, row.Confidence)
		}
		return true, 0
	}

	if opts.unresolved {
		rows, err := analysis.UnresolvedImports(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return true, 1
		}
		fmt.Printf("Unresolved imports (%d):\n", len(rows))
		for _, row := range rows {
			fmt.Printf("  %s: %s [%s]\n", row.File, row.Reference, row.Kind)
		}
		return true, 0
	}

	return false, 0
}

func writeReports(analysis *coreapp.AnalysisService, opts cliOptions) error {
	if opts.reportTSV == "" && opts.reportJSON == "" {
		return nil
	}

	ctx := context.Background()
	unused, err := analysis.UnusedImports(ctx)
	if err != nil {
		return err
	}
	unresolved, err := analysis.UnresolvedImports(ctx)
	if err != nil {
		return err
	}
	app := analysis.Unwrap()
	diags := report.Diagnostics{
		Unresolved: unresolved,
		Unused:     unused,
		FileCount:  app.FileCount(),
		ClassCount: app.Table.ClassCount(),
	}

	if opts.reportTSV != "" {
		tsv, err := report.RenderDiagnosticsTSV(diags)
		if err != nil {
			return fmt.Errorf("render diagnostics TSV: %w", err)
		}
		if err := util.WriteFileWithDirs(opts.reportTSV, tsv, 0o644); err != nil {
			return fmt.Errorf("write diagnostics TSV %q: %w", opts.reportTSV, err)
		}
	}

	if opts.reportJSON != "" {
		raw, err := report.RenderDiagnosticsJSON(diags)
		if err != nil {
			return fmt.Errorf("render diagnostics JSON: %w", err)
		}
		if err := util.WriteFileWithDirs(opts.reportJSON, raw, 0o644); err != nil {
			return fmt.Errorf("write diagnostics JSON %q: %w", opts.reportJSON, err)
		}
	}

	return nil
}

func printSummary(analysis *coreapp.AnalysisService, scan coreapp.ScanResult) {
	update := analysis.Unwrap().CurrentUpdate()
	fmt.Printf("Scanned %d files, %d classes\n", scan.FilesScanned, scan.Classes)
	fmt.Printf("Unresolved imports: %d\n", len(update.Unresolved))
	fmt.Printf("Unused imports: %d\n", len(update.Unused))
}

func loadConfig(path, cwd string) (*config.Config, error) {
	if path != defaultConfigPath {
		return config.Load(path)
	}

	candidates := []string{
		filepath.Clean(filepath.Join(cwd, "data/config/inscope.toml")),
		filepath.Clean(filepath.Join(cwd, "inscope.toml")),
	}
	for _, candidate := range candidates {
		cfg, err := config.Load(candidate)
		if err == nil {
			return cfg, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	slog.Info("no config file found, using defaults", "root", cwd)
	return config.Default(cwd), nil
}

func applyModeOptions(opts *cliOptions, cfg *config.Config) error {
	modeCount := 0
	if opts.resolve != "" {
		modeCount++
	}
	if opts.unused {
		modeCount++
	}
	if opts.unresolved {
		modeCount++
	}
	if modeCount > 1 {
		return fmt.Errorf("--resolve, --unused, and --unresolved cannot be combined")
	}

	if opts.resolve != "" && strings.TrimSpace(opts.resolveIn) == "" {
		return fmt.Errorf("--resolve requires --in <file> naming the file whose imports to walk")
	}
	if opts.resolveKinds != "" && opts.resolve == "" {
		return fmt.Errorf("--kinds requires --resolve")
	}

	if len(opts.args) > 0 {
		cfg.ProjectRoot = opts.args[0]
	}
	return nil
}

func parseKinds(raw string) (symbols.KindSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	var set symbols.KindSet
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "class":
			set |= symbols.Kinds(symbols.KindClass)
		case "method":
			set |= symbols.Kinds(symbols.KindMethod)
		case "field":
			set |= symbols.Kinds(symbols.KindField)
		case "enum_const":
			set |= symbols.Kinds(symbols.KindEnumConst)
		default:
			return 0, fmt.Errorf("--kinds accepts class, method, field, enum_const; got %q", part)
		}
	}
	return set, nil
}

func configureLogging(uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "inscope", "inscope.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "inscope", "inscope.log")
	}

	return "inscope.log"
}
