package cli

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/princespaghetti/catfact/internal/config"
	"github.com/princespaghetti/catfact/internal/factclient"
	"github.com/princespaghetti/catfact/internal/fetcher"
	"github.com/princespaghetti/catfact/internal/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	envFile  string
	url      string
	timeout  time.Duration
	logLevel string
}

var globals globalOptions

func (o *globalOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.envFile, "env-file", config.DefaultEnvFile, "Load settings from this dotenv file if it exists")
	fs.StringVar(&o.url, "url", "", "Fact endpoint URL (overrides CATFACT_URL)")
	fs.DurationVar(&o.timeout, "timeout", 0, "Per-fetch timeout, 0 disables (overrides CATFACT_TIMEOUT)")
	fs.StringVar(&o.logLevel, "log-level", "", "Diagnostic log level (overrides CATFACT_LOG_LEVEL)")
}

// resolve loads configuration from the environment and applies any flags
// that were set explicitly on fs.
func (o *globalOptions) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	if fs.Changed("url") {
		cfg.URL = o.url
	}
	if fs.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session bundles what a command needs to talk to the fact endpoint.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *factclient.Client
}

// newSession builds a logger and a client from cfg. Diagnostics go to logOut.
func newSession(cfg *config.Config, httpClient fetcher.HTTPClient, logOut io.Writer) (*session, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, err
	}

	client := factclient.New(
		fetcher.NewFetcher(httpClient),
		factclient.WithURL(cfg.URL),
		factclient.WithTimeout(cfg.Timeout),
		factclient.WithLogger(logger),
	)

	return &session{
		cfg:    cfg,
		log:    logger,
		client: client,
	}, nil
}
