package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/connectivity"
	"github.com/umputun/newsdesk/pkg/content"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/feed"
	"github.com/umputun/newsdesk/pkg/pipeline"
	"github.com/umputun/newsdesk/pkg/tui"
	"github.com/umputun/newsdesk/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"NEWSDESK_CONFIG" description:"configuration file (yaml)"`

	List   ListOpts   `command:"list" description:"print stories"`
	TUI    SearchOpts `command:"tui" description:"browse stories in the terminal (default)"`
	Server ServerOpts `command:"server" description:"serve stories over http"`
	Read   ReadOpts   `command:"read" description:"print the article text of a story"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// SearchOpts selects stories, empty values fall back to the config
type SearchOpts struct {
	Query   string `short:"q" long:"query" description:"search term"`
	OrderBy string `long:"order-by" choice:"newest" choice:"oldest" choice:"relevance" description:"result ordering"`
	Offline bool   `long:"offline" description:"treat the network as unreachable"`
}

// ListOpts for the list command
type ListOpts struct {
	SearchOpts
	Width int `short:"w" long:"width" default:"0" description:"truncate rows to width, 0 for no limit"`
}

// ServerOpts for the server command
type ServerOpts struct {
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Offline bool   `long:"offline" description:"treat the network as unreachable"`
}

// ReadOpts for the read command
type ReadOpts struct {
	SearchOpts
	Index int `short:"n" long:"index" default:"1" description:"story number in the list when no url given"`
	Args  struct {
		URL string `positional-arg-name:"url" description:"story url"`
	} `positional-args:"yes"`
}

// command names
const (
	cmdList   = "list"
	cmdTUI    = "tui"
	cmdServer = "server"
	cmdRead   = "read"
)

// connectivity watch interval for the server
const watchInterval = time.Minute

var revision = "unknown"

func main() {
	// .env is optional, values in it feed env-backed options and config expansion
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	command := cmdTUI
	if parser.Active != nil {
		command = parser.Active.Name
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, command, os.Stdout)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration and executes the command
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.NoColor {
		color.NoColor = true
	}

	logOut := io.Writer(os.Stdout)
	if command == cmdTUI && opts.Debug {
		// terminal is owned by the list, debug logs go to a file
		f, err := os.OpenFile("newsdesk-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	var secrets []string
	if cfg.API.APIKey != config.DefaultAPIKey {
		secrets = append(secrets, cfg.API.APIKey)
	}
	setupLog(opts.Debug, logOut, secrets...)
	log.Printf("[DEBUG] newsdesk %s, command %s", revision, command)

	switch command {
	case cmdList:
		settings, err := searchSettings(cfg, opts.List.SearchOpts)
		if err != nil {
			return err
		}
		return runList(ctx, makePipeline(cfg, makeChecker(cfg, opts.List.Offline)), settings, opts.List.Width, out)
	case cmdTUI:
		settings, err := searchSettings(cfg, opts.TUI)
		if err != nil {
			return err
		}
		return runTUI(ctx, makePipeline(cfg, makeChecker(cfg, opts.TUI.Offline)), settings, out)
	case cmdServer:
		if opts.Server.Listen != "" {
			cfg.Server.Listen = opts.Server.Listen
		}
		return runServer(ctx, cfg, opts.Server.Offline, opts.Debug)
	case cmdRead:
		return runRead(ctx, cfg, opts.Read, out)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// makeChecker builds the reachability probe for the configured API host
func makeChecker(cfg *config.Config, offline bool) pipeline.ConnectivityChecker {
	if offline {
		return connectivity.Static(false)
	}
	probe := cfg.Connectivity.Probe
	if probe == "" {
		probe = connectivity.ProbeFor(cfg.API.BaseURL)
	}
	return connectivity.NewChecker(probe, cfg.Connectivity.Timeout)
}

func makePipeline(cfg *config.Config, checker pipeline.ConnectivityChecker) *pipeline.Pipeline {
	return pipeline.New(feed.NewHTTPFetcher(cfg.API.UserAgent), checker,
		pipeline.Config{BaseURL: cfg.API.BaseURL, APIKey: cfg.API.APIKey})
}

// searchSettings applies command line search options on top of configured defaults
func searchSettings(cfg *config.Config, opts SearchOpts) (domain.Settings, error) {
	settings := cfg.Settings()
	if opts.Query != "" {
		settings.SearchTerm = opts.Query
	}
	if opts.OrderBy != "" {
		order, err := domain.ParseOrderBy(opts.OrderBy)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("invalid order-by: %w", err)
		}
		settings.OrderBy = order
	}
	return settings, nil
}

// runList prints fetched stories, one numbered row and url per story
func runList(ctx context.Context, p *pipeline.Pipeline, settings domain.Settings, width int, out io.Writer) error {
	stories, err := p.Fetch(ctx, settings)
	if errors.Is(err, pipeline.ErrNoConnectivity) {
		fmt.Fprintln(out, color.New(color.FgRed).Sprint(tui.TextOffline))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch stories: %w", err)
	}
	if len(stories) == 0 {
		fmt.Fprintln(out, tui.TextEmpty)
		return nil
	}

	num := color.New(color.FgYellow).SprintfFunc()
	link := color.New(color.FgBlue).SprintFunc()
	for i, s := range stories {
		rowWidth := width
		if rowWidth > 0 {
			rowWidth = max(rowWidth-5, 1) // number column
		}
		fmt.Fprintf(out, "%s %s\n", num("%3d.", i+1), tui.FormatRow(s, rowWidth))
		fmt.Fprintf(out, "     %s\n", link(s.URL))
	}
	return nil
}

// runTUI runs the interactive list until quit, the last selected url is printed on exit
func runTUI(ctx context.Context, p *pipeline.Pipeline, settings domain.Settings, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(ctx, p, tui.BrowserOpener{}, settings)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Selected() != "" {
		fmt.Fprintln(out, m.Selected())
	}
	return nil
}

// runServer serves stories over http and logs reachability changes until ctx is done
func runServer(ctx context.Context, cfg *config.Config, offline, debug bool) error {
	checker := makeChecker(cfg, offline)
	p := makePipeline(cfg, checker)

	var reader server.Reader
	if cfg.Reader.Enabled {
		reader = content.NewHTTPExtractor(cfg.Reader.Timeout, cfg.Reader.UserAgent).RestrictHosts(cfg.Reader.AllowedHosts...)
	}
	srv := server.New(cfg, p, reader, revision, debug)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error {
		watchConnectivity(ctx, checker, watchInterval)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Print("[INFO] shutdown complete")
	return nil
}

// watchConnectivity probes on each tick and logs state changes
func watchConnectivity(ctx context.Context, checker pipeline.ConnectivityChecker, interval time.Duration) {
	connected := checker.Connected(ctx)
	log.Printf("[INFO] api reachable: %v", connected)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if now := checker.Connected(ctx); now != connected && ctx.Err() == nil {
				connected = now
				log.Printf("[INFO] api reachable changed to %v", connected)
			}
		}
	}
}

// runRead prints the article text of the url, or of the n-th story for the search
func runRead(ctx context.Context, cfg *config.Config, opts ReadOpts, out io.Writer) error {
	storyURL := opts.Args.URL
	if storyURL == "" {
		settings, err := searchSettings(cfg, opts.SearchOpts)
		if err != nil {
			return err
		}
		stories, err := makePipeline(cfg, makeChecker(cfg, opts.Offline)).Fetch(ctx, settings)
		if err != nil {
			return fmt.Errorf("failed to fetch stories: %w", err)
		}
		if opts.Index < 1 || opts.Index > len(stories) {
			return fmt.Errorf("story %d not found, %d stories available", opts.Index, len(stories))
		}
		storyURL = stories[opts.Index-1].URL
	}

	reader := content.NewHTTPExtractor(cfg.Reader.Timeout, cfg.Reader.UserAgent)
	article, err := reader.Read(ctx, storyURL)
	if err != nil {
		return fmt.Errorf("failed to read story: %w", err)
	}

	if article.Title != "" {
		fmt.Fprintln(out, color.New(color.Bold).Sprint(article.Title))
	}
	fmt.Fprintln(out, color.New(color.FgBlue).Sprint(article.URL))
	fmt.Fprintln(out)
	fmt.Fprintln(out, article.Text)
	return nil
}

func setupLog(dbg bool, out io.Writer, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError, lgr.Out(out), lgr.Err(out)}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
