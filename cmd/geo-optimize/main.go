package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cognicore/geoaudit/internal/logger"
	"github.com/cognicore/geoaudit/pkg/geoaudit"
	"github.com/cognicore/geoaudit/pkg/geoaudit/config"
	"github.com/cognicore/geoaudit/pkg/geoaudit/optimize"
)

type options struct {
	configPath string
	envFile    string
	platform   string
	mode       string
	out        string
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file (platform, content and voice sections)")
	flag.StringVar(&opts.envFile, "env", "", "Optional .env file (default: ./.env if present)")
	flag.StringVar(&opts.platform, "platform", string(optimize.ChatGPT), "chatgpt, perplexity, claude, gemini, grokipedia or multi")
	flag.StringVar(&opts.mode, "mode", string(optimize.ModePlatform), "content, platform, voice or all")
	flag.StringVar(&opts.out, "out", "", "Output file (default: <input>-<suffix>.html)")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: geo-optimize [flags] <file.html>\n\n")
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
		log.Fatalf("geo-optimize: %v", err)
	}
}

func run(ctx context.Context, opts options, input string, stdout io.Writer) error {
	platform, err := optimize.ParsePlatform(opts.platform)
	if err != nil {
		return err
	}
	mode, err := optimize.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	loader := config.Loader{ConfigPath: opts.configPath, EnvFile: opts.envFile}
	comp, err := loader.Load()
	if err != nil {
		return err
	}
	if opts.verbose {
		comp.Config.Log.Verbose()
	}
	zl, err := logger.New(comp.Config.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer zl.Sync()

	auditor, err := geoaudit.New(geoaudit.Options{Components: comp, Logger: zl})
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	out, err := auditor.Optimizer().Run(ctx, string(data), platform, mode)
	if err != nil {
		return err
	}

	dest := opts.out
	if dest == "" {
		dest = optimize.OutputPath(input, mode.Suffix(platform))
	}
	if err := os.WriteFile(dest, []byte(out.HTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	zl.Info("optimized file written", zap.String("path", dest), zap.Int("changes", len(out.Changes())))

	printSummary(stdout, out, dest)
	return nil
}

func printSummary(w io.Writer, out *optimize.Outcome, dest string) {
	fmt.Fprintf(w, "Optimized for %s (%s)\n", out.Platform, out.Mode)
	changes := out.Changes()
	if len(changes) == 0 {
		fmt.Fprintln(w, "No changes needed")
	}
	for _, c := range changes {
		fmt.Fprintf(w, "  + %s\n", c)
	}
	if out.Content != nil && out.Content.TLDR != "" {
		fmt.Fprintf(w, "\nTL;DR: %s\n", out.Content.TLDR)
	}
	if out.Voice != nil && out.Voice.Snippet != "" {
		fmt.Fprintf(w, "\nFeatured snippet: %s\n", out.Voice.Snippet)
	}

	fmt.Fprintf(w, "\nCitation opportunities: %d\n", out.Citations.Count)
	for _, o := range out.Citations.Opportunities {
		fmt.Fprintf(w, "  - [%s] %s: %s (%s)\n", o.Type, o.Location, o.Suggestion, o.Impact)
	}
	if out.Citations.Count > 0 {
		fmt.Fprintf(w, "  Note: %s\n", out.Citations.Note)
	}

	fmt.Fprintf(w, "\nFreshness score: %d/100\n", out.Freshness.Score)
	for _, issue := range out.Freshness.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
	fmt.Fprintf(w, "  %s\n", out.Freshness.Recommendation)

	fmt.Fprintf(w, "\nWritten to %s\n", dest)
}
