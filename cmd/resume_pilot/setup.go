package main

import (
	"fmt"
	"os"

	"github.com/jihoon/resume-pilot/internal/config"
	"github.com/jihoon/resume-pilot/internal/gateway"
	"github.com/jihoon/resume-pilot/internal/session"
	"github.com/jihoon/resume-pilot/internal/ui"
)

// Flags shared by every command.
var (
	flagConfigPath string
	flagAPIURL     string
	flagStatePath  string
	flagVerbose    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	pf.StringVar(&flagAPIURL, "api-url", "", "Backend base URL (defaults to "+config.EnvAPIURL+" env var)")
	pf.StringVar(&flagStatePath, "state", "", "Path of the local session state file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

// app bundles the pieces every command needs: resolved config, the session
// store, the backend gateway, and the output printer.
type app struct {
	cfg     config.Config
	store   *session.BoltStore
	gw      *gateway.Client
	printer *ui.Printer
}

// newApp loads the config file (if given), applies flag overrides and
// defaults, and opens the session store.
func newApp() (*app, error) {
	var cfg config.Config
	if flagConfigPath != "" {
		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagStatePath != "" {
		cfg.StatePath = flagStatePath
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   store,
		gw:      gateway.NewClient(cfg.APIURL, cfg.HTTPTimeout()),
		printer: ui.NewPrinter(os.Stdout),
	}, nil
}

// Close releases the session store.
func (a *app) Close() {
	_ = a.store.Close()
}
