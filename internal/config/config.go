package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jpstream/internal/exit"
	"github.com/jacoelho/jpstream/internal/pathing"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	// Stdin is the input name that reads from standard input.
	Stdin = pathing.Stdin
)

var (
	ErrNoArguments     = errors.New("no arguments provided")
	ErrNoPaths         = errors.New("no paths specified")
	ErrEmptyPath       = errors.New("path cannot be empty")
	ErrInvalidFormat   = errors.New("format must be json or yaml")
	ErrInvalidRate     = errors.New("rate limit cannot be negative")
	ErrInvalidLogLevel = errors.New("log level must be debug, info, warn or error")
)

// Config represents the complete configuration for the jpstream tool.
type Config struct {
	// Inputs are file names; Stdin reads standard input.
	Inputs []string

	// Extraction
	Paths         []string
	PathFile      string
	ObjectsAsMaps bool
	Strict        bool

	// Output
	Format    string
	RateLimit float64 // Matches per second (0 = unlimited)
	Summary   bool
	Explain   bool

	LogLevel slog.Level
}

// pathFile is the on-disk shape of -path-file.
type pathFile struct {
	Paths         []string `yaml:"paths"`
	Inputs        []string `yaml:"inputs"`
	ObjectsAsMaps *bool    `yaml:"objects_as_maps"`
	Format        string   `yaml:"format"`
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoPaths
	}

	for _, p := range c.Paths {
		if p == "" {
			return ErrEmptyPath
		}
	}

	if c.Format != FormatJSON && c.Format != FormatYAML {
		return fmt.Errorf("%w, got: %s", ErrInvalidFormat, c.Format)
	}

	if c.RateLimit < 0 {
		return ErrInvalidRate
	}

	for _, input := range c.Inputs {
		if input == Stdin {
			continue
		}
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("input file %s not found: %w", input, err)
		}
	}

	return nil
}

// pathsFlag implements flag.Value for parsing multiple -path flags.
type pathsFlag []string

func (p *pathsFlag) String() string {
	return strings.Join(*p, ",")
}

func (p *pathsFlag) Set(value string) error {
	if value == "" {
		return ErrEmptyPath
	}
	*p = append(*p, value)
	return nil
}

// levelFlag implements flag.Value on top of slog.Level text parsing.
type levelFlag struct {
	level slog.Level
}

func (l *levelFlag) String() string {
	return l.level.String()
}

func (l *levelFlag) Set(value string) error {
	if err := l.level.UnmarshalText([]byte(value)); err != nil {
		return fmt.Errorf("%w, got: %s", ErrInvalidLogLevel, value)
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var paths pathsFlag
	level := levelFlag{level: slog.LevelWarn}

	var (
		pathFileName  = fs.String("path-file", "", "Path to YAML file listing paths")
		objectsAsMaps = fs.Bool("objects-as-maps", false, "Build objects as ordered maps that keep empty keys")
		format        = fs.String("format", FormatJSON, "Output format: json or yaml")
		strict        = fs.Bool("strict", false, "Reject malformed path patterns")
		rateLimit     = fs.Float64("rate-limit", 0, "Rate limit in matches per second (0 for unlimited)")
		summary       = fs.Bool("summary", false, "Print a run summary to stderr")
		explain       = fs.Bool("explain", false, "Print each path as a JSONPath expression and exit")
	)

	fs.Var(&paths, "path", "Path pattern to extract (can be used multiple times)")
	fs.Var(&level, "log-level", "Log level: debug, info, warn or error")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	config := &Config{
		Inputs:        fs.Args(),
		PathFile:      *pathFileName,
		ObjectsAsMaps: *objectsAsMaps,
		Strict:        *strict,
		Format:        *format,
		RateLimit:     *rateLimit,
		Summary:       *summary,
		Explain:       *explain,
		LogLevel:      level.level,
	}

	// File paths first, then command-line paths; explicit flags win over file settings.
	if *pathFileName != "" {
		pf, err := loadPathFile(*pathFileName)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load path file: %v\n\n%s", err, Usage())
		}
		config.Paths = append(config.Paths, pf.Paths...)
		if pf.ObjectsAsMaps != nil && !set["objects-as-maps"] {
			config.ObjectsAsMaps = *pf.ObjectsAsMaps
		}
		if pf.Format != "" && !set["format"] {
			config.Format = pf.Format
		}
		if len(config.Inputs) == 0 {
			config.Inputs = pathing.ResolveInputs(pf.Inputs, *pathFileName)
		}
	}
	config.Paths = append(config.Paths, paths...)

	if len(config.Inputs) == 0 {
		config.Inputs = []string{Stdin}
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

func loadPathFile(filename string) (*pathFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var pf pathFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("invalid path file %s: %w", filename, err)
	}

	return &pf, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jpstream - streaming JSON path extraction

Usage: jpstream [options] [file1] [file2] ...

Reads standard input when no file (or -) is given.

Options:
  --path PATTERN          Path to extract, e.g. store.book[*].title (can be used multiple times)
  --path-file FILE        YAML file with paths, inputs, objects_as_maps and format
  --objects-as-maps       Build objects as ordered maps that keep empty keys
  --format FORMAT         Output format: json or yaml (default: json)
  --strict                Reject malformed path patterns
  --rate-limit N          Rate limit in matches per second (0 for unlimited)
  --summary               Print a run summary to stderr
  --explain               Print each path as a JSONPath expression and exit
  --log-level LEVEL       Log level: debug, info, warn or error (default: warn)
  -h, --help              Show this help message

Examples:
  jpstream --path store.book[*] data.json          # Extract every book
  jpstream --path a.b --path a.c[0] < data.json    # Read from stdin
  jpstream --path-file paths.yaml --format yaml    # Paths from file, YAML output
  jpstream --path items[*] --rate-limit 10 -       # At most 10 matches per second`
}
