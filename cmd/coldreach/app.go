package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akm592/coldreach/internal/cache"
	"github.com/akm592/coldreach/internal/config"
	"github.com/akm592/coldreach/internal/db"
	"github.com/akm592/coldreach/internal/generation"
	"github.com/akm592/coldreach/internal/llm"
	"github.com/akm592/coldreach/internal/observability"
	"github.com/akm592/coldreach/internal/pipeline"
	"github.com/akm592/coldreach/internal/research"
	"github.com/akm592/coldreach/internal/resume"
	"github.com/akm592/coldreach/internal/templates"
	"github.com/akm592/coldreach/internal/transport"
)

// commonFlags are the flags shared by every campaign command. Flag values
// override config-file values only when the flag was explicitly set.
type commonFlags struct {
	configPath      string
	databaseURL     string
	apiKey          string
	searchAPIKey    string
	resumeAIML      string
	resumeFullstack string
	spreadsheetID   string
	sendDelay       int
	useBrowser      bool
	verbose         bool
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVar(&f.databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	cmd.Flags().StringVar(&f.searchAPIKey, "search-api-key", "", "Tavily API Key (optional, defaults to TAVILY_API_KEY env var)")
	cmd.Flags().StringVar(&f.resumeAIML, "resume-aiml", "", "Path to the AI/ML resume attachment")
	cmd.Flags().StringVar(&f.resumeFullstack, "resume-fullstack", "", "Path to the Fullstack resume attachment")
	cmd.Flags().StringVar(&f.spreadsheetID, "spreadsheet-id", "", "Google Sheet ID to mirror the contact table (optional)")
	cmd.Flags().IntVar(&f.sendDelay, "send-delay", 0, "Seconds to wait between sends")
	cmd.Flags().BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA company sites (requires Chrome)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolveConfig loads the optional config file, overlays explicitly set
// flags, fills environment fallbacks and defaults, and validates the
// result.
func resolveConfig(cmd *cobra.Command, f *commonFlags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if f.verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", f.configPath)
		}
	}

	// Command-line args take priority; only override when explicitly set.
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = f.databaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = f.searchAPIKey
	}
	if cmd.Flags().Changed("resume-aiml") {
		cfg.ResumeAIML = f.resumeAIML
	}
	if cmd.Flags().Changed("resume-fullstack") {
		cfg.ResumeFullstack = f.resumeFullstack
	}
	if cmd.Flags().Changed("spreadsheet-id") {
		cfg.SpreadsheetID = f.spreadsheetID
	}
	if cmd.Flags().Changed("send-delay") {
		cfg.SendDelaySeconds = f.sendDelay
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = f.useBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return cfg, nil
}

// app is the assembled campaign system plus the resources it owns.
type app struct {
	cfg      config.Config
	database *db.DB
	client   llm.Client
	runner   *pipeline.Runner
}

// buildApp connects to the database and wires a Runner from the
// configuration. Online commands additionally get the LLM client and the
// Gmail services; ingest and status work fully offline against the
// database alone.
func buildApp(ctx context.Context, cfg config.Config, online bool) (*app, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	if !online {
		return &app{cfg: cfg, database: database, runner: &pipeline.Runner{
			Store:   database,
			Printer: observability.NewPrinter(os.Stdout),
			Verbose: cfg.Verbose,
		}}, nil
	}

	if cfg.APIKey == "" {
		database.Close()
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, err
	}

	a := &app{cfg: cfg, database: database, client: client}

	cacheOpts := []cache.Option{cache.WithThreshold(cfg.SemanticThreshold)}
	if cfg.SemanticCache {
		cacheOpts = append(cacheOpts, cache.WithEmbedder(client))
	}
	researchCache, err := cache.New(ctx, database, time.Duration(cfg.CacheTTLHours)*time.Hour, cacheOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	tracker, err := templates.NewTracker(ctx, database)
	if err != nil {
		a.Close()
		return nil, err
	}

	generator := generation.NewGeminiGenerator(client)
	researcher := research.NewResearcher(
		research.NewTavilyProvider(cfg.SearchAPIKey),
		research.WithPageReader(research.NewSitePageReader(cfg.UseBrowser, cfg.Verbose)),
		research.WithNewsReader(research.NewFeedNewsReader(cfg.NewsFeedTemplate)),
	)

	a.runner = &pipeline.Runner{
		Store:      database,
		Cache:      researchCache,
		Researcher: researcher,
		Gate:       generation.NewGate(generator, tracker, htmlSignature(cfg.Sender.Signature)),
		Generator:  generator,
		Tracker:    tracker,
		Resumes:    resume.NewLibrary(cfg.ResumeAIML, cfg.ResumeFullstack),
		Printer:    observability.NewPrinter(os.Stdout),
		Sender: generation.SenderProfile{
			Name:              cfg.Sender.Name,
			Degree:            cfg.Sender.Degree,
			KeySkills:         cfg.Sender.KeySkills,
			ProjectExperience: cfg.Sender.ProjectExperience,
			GraduationDate:    cfg.Sender.GraduationDate,
		},
		Thresholds: cfg.FollowUpThresholds,
		SendDelay:  time.Duration(cfg.SendDelaySeconds) * time.Second,
		Verbose:    cfg.Verbose,
	}

	if cfg.Sender.Email == "" {
		a.Close()
		return nil, fmt.Errorf("sender email is required to send mail (set sender.email in the config file)")
	}
	gmailSvc, err := transport.NewGmailService(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	mailer, err := transport.NewGmailMailer(gmailSvc, cfg.Sender.Email)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.runner.Mailer = mailer
	a.runner.Replies = transport.NewGmailReplyChecker(gmailSvc)

	if cfg.SpreadsheetID != "" {
		sheetsSvc, err := transport.NewSheetsService(ctx, cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.runner.Sheets = transport.NewSheetsSyncer(sheetsSvc, cfg.SpreadsheetID, cfg.SheetRange)
	}

	return a, nil
}

func (a *app) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.database != nil {
		a.database.Close()
	}
}

// htmlSignature converts the configured plain-text signature into the HTML
// form appended to generated bodies.
func htmlSignature(sig string) string {
	if sig == "" {
		return ""
	}
	return "<br><br>" + strings.ReplaceAll(sig, "\n", "<br>")
}
