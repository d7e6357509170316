// Package runtime provides the application runtime context for the toggl
// CLI: loaded configuration, the API session and the output formatter.
package runtime

import (
	"github.com/swcurran/toggl-cli/internal/api"
	"github.com/swcurran/toggl-cli/internal/config"
	"github.com/swcurran/toggl-cli/internal/logging"
	"github.com/swcurran/toggl-cli/internal/output"
	"github.com/swcurran/toggl-cli/internal/timeutil"
	"github.com/swcurran/toggl-cli/internal/transport"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Clock     *timeutil.SystemClock
	Session   *api.Session
	Formatter *output.Formatter
}

// Options configures the runtime context.
type Options struct {
	ConfigPath string
	Format     output.Format
	ColorMode  output.ColorMode
	Verbose    bool
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		ConfigPath: config.DefaultPath(),
		Format:     output.FormatCLI,
		ColorMode:  output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	if opts.Debug {
		logging.InitDebug()
	} else {
		logging.Init(logging.DefaultConfig())
	}
	log := logging.Logger()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	clock, err := timeutil.NewSystemClock(cfg.Timezone())
	if err != nil {
		return nil, err
	}

	caller := transport.NewClient(cfg.APIURL(), cfg.APIToken(), log)
	session := api.NewSession(caller, clock, cfg, log)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	formatter.Verbose = opts.Verbose

	return &Context{
		Config:    cfg,
		Clock:     clock,
		Session:   session,
		Formatter: formatter,
	}, nil
}
