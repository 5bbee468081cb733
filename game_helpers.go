package main

import (
	"os"
	"time"

	flag "github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/hatem32/Conway-s-Game-of-Life/model"
	"github.com/hatem32/Conway-s-Game-of-Life/utils"
)

const defaultConfigFile = "config.json"

// options holds the command line. Zero values mean "not given".
type options struct {
	configPath  string
	rows        int
	cols        int
	delay       time.Duration
	seed        int64
	logSpec     string
	noClear     bool
	patternPath string
}

// parseFlags parses the command line arguments, not including the program name
func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gol", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "configuration file, JSON or YAML (default "+defaultConfigFile+")")
	fs.IntVar(&opts.rows, "rows", 0, "initial grid rows")
	fs.IntVar(&opts.cols, "cols", 0, "initial grid columns")
	fs.DurationVar(&opts.delay, "delay", -1, "delay between displayed generations")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.StringVar(&opts.logSpec, "log", "", "logging configuration, e.g. <root>=DEBUG")
	fs.BoolVar(&opts.noClear, "no-clear", false, "do not clear the screen between frames")

	if err := fs.Parse(true, args); err != nil {
		return opts, errors.Wrap(err, "[parseFlags] invalid arguments")
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.patternPath = fs.Arg(0)
	default:
		return opts, errors.Errorf("[parseFlags] expected at most one pattern file, got %d arguments", fs.NArg())
	}
	return opts, nil
}

// buildConfig loads the configuration file and applies command line overrides.
// The default configuration file may be missing; an explicitly named one may not.
func buildConfig(opts options) (utils.Config, error) {
	path := opts.configPath
	if path == "" {
		path = defaultConfigFile
	}
	config, err := utils.LoadConfig(path)
	if err != nil {
		if opts.configPath != "" || !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		logger.Infof("using default configuration (%s not found)", path)
		config = utils.DefaultConfig()
	}

	if opts.rows != 0 {
		config.Rows = opts.rows
	}
	if opts.cols != 0 {
		config.Cols = opts.cols
	}
	if opts.delay >= 0 {
		config.FrameDelay = opts.delay
	}
	if opts.seed != 0 {
		config.Seed = opts.seed
	}
	if opts.logSpec != "" {
		config.LogLevel = opts.logSpec
	}
	if opts.noClear {
		config.ClearScreen = false
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "[buildConfig] invalid options")
	}
	return config, nil
}

func configureLogging(config utils.Config) error {
	if err := loggo.ConfigureLoggers(config.LogLevel); err != nil {
		return errors.Wrapf(err, "[configureLogging] bad logging configuration %q", config.LogLevel)
	}
	logger.Debugf("configuration: %s", pretty.Sprint(config))
	return nil
}

// newRandomSource seeds from the clock unless a seed is configured
func newRandomSource(seed int64) model.RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return model.NewRandomSource(seed)
}
