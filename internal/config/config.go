package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/darktriad/internal/app"
	"github.com/atomicstack/darktriad/internal/background"
	"github.com/atomicstack/darktriad/internal/playback"
	"github.com/atomicstack/darktriad/internal/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Headless Headless
	// ConfigFile is the optional file that supplied defaults.
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

// Headless selects a one-shot operation that runs instead of the UI.
type Headless struct {
	DumpSession   bool
	PrintTimeline bool
	Swap          *Swap
}

// Swap is a parsed --swap MODE[:ID] request.
type Swap struct {
	Mode background.Mode
	ID   string
}

// Active reports whether any headless operation was requested.
func (h Headless) Active() bool {
	return h.DumpSession || h.PrintTimeline || h.Swap != nil
}

const (
	envConfigFile     = "TRIAD_CONFIG"
	envResources      = "TRIAD_RESOURCES"
	envStateDir       = "TRIAD_STATE_DIR"
	envStore          = "TRIAD_STORE"
	envClock          = "TRIAD_CLOCK"
	envPollInterval   = "TRIAD_POLL_INTERVAL"
	envFrameRate      = "TRIAD_FRAME_RATE"
	envWidth          = "TRIAD_WIDTH"
	envHeight         = "TRIAD_HEIGHT"
	envShowFooter     = "TRIAD_FOOTER"
	envDebug          = "TRIAD_DEBUG"
	envWatch          = "TRIAD_WATCH"
	envReloadDebounce = "TRIAD_RELOAD_DEBOUNCE"
	envTrace          = "TRIAD_TRACE"
	envLogFile        = "TRIAD_LOG_FILE"
	envLogLevel       = "TRIAD_LOG_LEVEL"

	defaultResources      = "resources"
	defaultFrameRate      = 30
	defaultReloadDebounce = 200 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configFile := envOrDefault(env, envConfigFile, "")
	pre := pflag.NewFlagSet("darktriad", pflag.ContinueOnError)
	pre.SetOutput(new(strings.Builder))
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.StringVar(&configFile, "config", configFile, "")
	_ = pre.Parse(args)

	file, err := readConfigFile(configFile, defaultStateDir(env))
	if err != nil {
		return Config{}, err
	}

	fs := pflag.NewFlagSet("darktriad", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	_ = fs.String("config", configFile, "optional JSON/YAML/TOML file supplying defaults")
	resources := fs.String("resources", envOrDefault(env, envResources, file.GetString("resources")), "directory holding glyphs, backgrounds, config and timeline files")
	stateDir := fs.String("state-dir", envOrDefault(env, envStateDir, file.GetString("state-dir")), "directory for the preferences database")
	storeBackend := fs.String("store", envOrDefault(env, envStore, file.GetString("store")), "preference store backend (sqlite or memory)")
	clock := fs.String("clock", envOrDefault(env, envClock, file.GetString("clock")), "media clock source: auto, frame or poll")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, file.GetDuration("poll-interval")), "media time polling interval")
	frameRate := fs.Float64("frame-rate", envOrFloat(env, envFrameRate, file.GetFloat64("frame-rate")), "simulated video frame rate (0 disables frame callbacks)")
	width := fs.Int("width", envOrInt(env, envWidth, file.GetInt("width")), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.GetInt("height")), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.GetBool("footer")), "show the key help row")
	debug := fs.Bool("debug", envOrBool(env, envDebug, file.GetBool("debug")), "start with the debug overlay visible")
	watch := fs.Bool("watch", envOrBool(env, envWatch, file.GetBool("watch")), "reload resources when files change")
	debounce := fs.Duration("reload-debounce", envOrDuration(env, envReloadDebounce, file.GetDuration("reload-debounce")), "quiet period before a resource reload")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.GetBool("trace")), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.GetString("log-file")), "path to the log file")
	logLevel := fs.String("log-level", envOrDefault(env, envLogLevel, file.GetString("log-level")), "minimum log level (debug, info, warn, error)")
	dumpSession := fs.Bool("dump-session", false, "print the session payload as JSON and exit")
	printTimeline := fs.Bool("print-timeline", false, "print the loaded cue list as JSON and exit")
	swap := fs.String("swap", "", "perform one background swap (next, prev or set:ID) and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pollInterval <= 0 {
		return Config{}, fmt.Errorf("poll-interval must be > 0 (got %s)", *pollInterval)
	}
	if *frameRate < 0 {
		return Config{}, fmt.Errorf("frame-rate must be >= 0 (got %g)", *frameRate)
	}
	if *debounce < 0 {
		return Config{}, fmt.Errorf("reload-debounce must be >= 0 (got %s)", *debounce)
	}
	clockMode, err := playback.ParseClockMode(*clock)
	if err != nil {
		return Config{}, err
	}
	switch *storeBackend {
	case store.BackendSQLite, store.BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", *storeBackend)
	}

	var swapReq *Swap
	if *swap != "" {
		parsed, err := ParseSwap(*swap)
		if err != nil {
			return Config{}, err
		}
		swapReq = &parsed
	}

	cfg := Config{
		App: app.Config{
			ResourcesDir:   *resources,
			StateDir:       *stateDir,
			StoreBackend:   *storeBackend,
			Clock:          clockMode,
			PollInterval:   *pollInterval,
			FrameRate:      *frameRate,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Debug:          *debug,
			Watch:          *watch,
			ReloadDebounce: *debounce,
		},
		Logging: Logging{
			FilePath: *logFile,
			Level:    *logLevel,
			Trace:    *trace,
		},
		Headless: Headless{
			DumpSession:   *dumpSession,
			PrintTimeline: *printTimeline,
			Swap:          swapReq,
		},
		ConfigFile: configFile,
		Flags: map[string]string{
			"config":         configFile,
			"resources":      *resources,
			"stateDir":       *stateDir,
			"store":          *storeBackend,
			"clock":          string(clockMode),
			"pollInterval":   pollInterval.String(),
			"frameRate":      strconv.FormatFloat(*frameRate, 'g', -1, 64),
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"debug":          strconv.FormatBool(*debug),
			"watch":          strconv.FormatBool(*watch),
			"reloadDebounce": debounce.String(),
			"trace":          strconv.FormatBool(*trace),
			"logFile":        *logFile,
			"logLevel":       *logLevel,
			"swap":           *swap,
		},
		Args: fs.Args(),
	}

	return cfg, nil
}

// readConfigFile returns a viper instance holding the built-in defaults,
// overlaid with the contents of path when one is given.
func readConfigFile(path, stateDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("resources", defaultResources)
	v.SetDefault("state-dir", stateDir)
	v.SetDefault("store", store.BackendSQLite)
	v.SetDefault("clock", string(playback.ClockAuto))
	v.SetDefault("poll-interval", playback.DefaultPollInterval)
	v.SetDefault("frame-rate", defaultFrameRate)
	v.SetDefault("width", 0)
	v.SetDefault("height", 0)
	v.SetDefault("footer", true)
	v.SetDefault("debug", false)
	v.SetDefault("watch", true)
	v.SetDefault("reload-debounce", defaultReloadDebounce)
	v.SetDefault("trace", false)
	v.SetDefault("log-file", "")
	v.SetDefault("log-level", "info")
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return v, nil
}

// ParseSwap parses MODE[:ID] where MODE is next, prev, previous or set.
// The id is only consulted for set.
func ParseSwap(value string) (Swap, error) {
	modeName, id, _ := strings.Cut(value, ":")
	mode, err := background.ParseMode(modeName)
	if err != nil {
		return Swap{}, fmt.Errorf("parse --swap %q: %w", value, err)
	}
	return Swap{Mode: mode, ID: id}, nil
}

func defaultStateDir(env map[string]string) string {
	if dir := env["XDG_STATE_HOME"]; dir != "" {
		return filepath.Join(dir, "darktriad")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "state", "darktriad")
	}
	return filepath.Join(os.TempDir(), "darktriad")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.ResourcesDir) == "" {
		return fmt.Errorf("resources directory must not be empty")
	}
	if cfg.App.StoreBackend == store.BackendSQLite && strings.TrimSpace(cfg.App.StateDir) == "" {
		return fmt.Errorf("state directory must not be empty for the sqlite store")
	}
	n := 0
	for _, on := range []bool{cfg.Headless.DumpSession, cfg.Headless.PrintTimeline, cfg.Headless.Swap != nil} {
		if on {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("--dump-session, --print-timeline and --swap are mutually exclusive")
	}
	return nil
}
