package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/internal/logger"
	"github.com/cognicore/geoaudit/pkg/geoaudit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/config"
	"github.com/cognicore/geoaudit/pkg/geoaudit/report"
)

type options struct {
	configPath   string
	stoplistPath string
	envFile      string
	format       string
	outDir       string
	skip         string
	verbose      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.stoplistPath, "stoplist", "", "YAML stoplist replacing the built-in one")
	flag.StringVar(&opts.envFile, "env", "", "Optional .env file (default: ./.env if present)")
	flag.StringVar(&opts.format, "format", "", "Report formats: json, md, html, sqlite, all or a comma list")
	flag.StringVar(&opts.outDir, "out", "", "Output directory (default: JSON on stdout)")
	flag.StringVar(&opts.skip, "skip", "", "Comma separated analyzers to skip")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: geo-audit [flags] <file.html|file.md|file.jsx>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, flag.Arg(0), os.Stdout); err != nil {
		log.Fatalf("geo-audit: %v", err)
	}
}

func run(ctx context.Context, opts options, path string, stdout io.Writer) error {
	loader := config.Loader{
		ConfigPath:   opts.configPath,
		StoplistPath: opts.stoplistPath,
		EnvFile:      opts.envFile,
	}
	comp, err := loader.Load()
	if err != nil {
		return err
	}
	cfg := comp.Config
	if opts.format != "" {
		cfg.Report.Formats = opts.format
	}
	if opts.outDir != "" {
		cfg.Report.OutputDir = opts.outDir
	}
	if opts.verbose {
		cfg.Log.Verbose()
	}
	formats, err := report.ParseFormats(cfg.Report.Formats)
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer zl.Sync()

	auditor, err := geoaudit.New(geoaudit.Options{
		Components: comp,
		Skip:       splitList(opts.skip),
		Logger:     zl,
	})
	if err != nil {
		return err
	}

	r, err := auditor.AuditFile(ctx, path)
	if err != nil {
		return err
	}

	if cfg.Report.OutputDir == "" {
		return report.WriteJSON(stdout, r)
	}

	paths, err := report.Writer{Dir: cfg.Report.OutputDir, Logger: zl}.Write(ctx, r, formats)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Overall score: %d/100 (%s - %s)\n", r.Score.Overall, r.Grade.Letter, r.Grade.Label)
	if r.Score.Partial {
		fmt.Fprintf(stdout, "Partial score: %s did not run\n", strings.Join(r.Score.Missing, ", "))
	}
	for _, p := range paths {
		fmt.Fprintf(stdout, "  %s\n", p)
	}
	zl.Debug("audit finished", zap.String("file", path), zap.Int("reports", len(paths)))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
