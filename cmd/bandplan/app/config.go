package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"

	defaultOutput   = "canadian_band_plan"
	defaultLogLevel = "info"
)

type ImageFormat string

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

// Config represents the main application configuration
type Config struct {
	Settings      Settings      `yaml:"settings"`
	ScanDirectory string        `yaml:"scanDirectory"`
	Output        string        `yaml:"output"` // Output path without extension
	Format        ImageFormat   `yaml:"format"`
	Render        RenderSection `yaml:"render"`
	Archive       ArchiveConfig `yaml:"archive"`

	// OutputFile is Output with the extension of Format, set by Finalize.
	OutputFile string `yaml:"-"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level parses LogLevel.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// RenderSection represents chart settings
type RenderSection struct {
	Title              string     `yaml:"title"`
	Width              int        `yaml:"width"`
	VSWRMax            float64    `yaml:"vswrMax"`
	OverviewVSWRMax    float64    `yaml:"overviewVSWRMax"`
	Theme              ColorTheme `yaml:"theme"`
	ReferenceImpedance float64    `yaml:"referenceImpedance"`
}

// ArchiveConfig represents scan archive settings
type ArchiveConfig struct {
	Path         string `yaml:"path"`         // SQLite database, archiving is disabled when empty
	Replay       bool   `yaml:"replay"`       // Overlay archived scans missing from the scan directory
	MaxBatchSize int    `yaml:"maxBatchSize"` // Samples per insert statement, 0 for the store default
}

func NewConfig() *Config {
	return &Config{
		Settings:      Settings{LogLevel: defaultLogLevel},
		ScanDirectory: ".",
		Output:        defaultOutput,
		Format:        ImagePNG,
		Render: RenderSection{
			Title:              defaultTitle,
			Width:              defaultWidth,
			VSWRMax:            defaultVSWRMax,
			OverviewVSWRMax:    defaultOverviewVSWRMax,
			Theme:              ClassicTheme,
			ReferenceImpedance: scan.DefaultReferenceImpedance,
		},
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	c := NewConfig()
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return c, nil
}

// NewConfigFromCLI builds the configuration from the command line. Every flag
// is optional; flags set explicitly override the configuration file.
func NewConfigFromCLI() (*Config, error) {
	return newConfigFromArgs(flag.CommandLine, os.Args[1:])
}

func newConfigFromArgs(fs *flag.FlagSet, args []string) (*Config, error) {
	defaults := NewConfig()

	var (
		configPath  string
		scanDir     string
		output      string
		imageFormat string
		archivePath string
		verbose     bool
	)
	fs.StringVar(&configPath, "c", "", "Path to the configuration file")
	fs.StringVar(&scanDir, "dir", defaults.ScanDirectory, "Directory containing the .asd scan files")
	fs.StringVar(&output, "o", defaults.Output, "Path to the output file, without extension")
	fs.StringVar(&imageFormat, "f", string(defaults.Format), "Output image format. [png, jpeg]")
	fs.StringVar(&archivePath, "archive", "", "Path to the SQLite scan archive")
	fs.BoolVar(&verbose, "verbose", false, "Enable more verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := defaults
	if configPath != "" {
		var err error
		if c, err = LoadConfig(configPath); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			c.ScanDirectory = scanDir
		case "o":
			c.Output = output
		case "f":
			c.Format = ImageFormat(imageFormat)
		case "archive":
			c.Archive.Path = archivePath
		case "verbose":
			if verbose {
				c.Settings.LogLevel = "debug"
			}
		}
	})

	if err := c.Finalize(); err != nil {
		fs.Usage()
		return nil, err
	}
	return c, nil
}

// Finalize validates the configuration and derives OutputFile.
func (c *Config) Finalize() error {
	c.Format = ImageFormat(strings.ToLower(string(c.Format)))
	c.Render.Theme = ColorTheme(strings.ToLower(string(c.Render.Theme)))

	var err error
	if _, lErr := c.Settings.Level(); lErr != nil {
		err = lErr
	} else if c.ScanDirectory == "" {
		err = errors.New("scan directory is required")
	} else if c.Output == "" {
		err = errors.New("output file is required")
	} else if _, ok := validImageFormats[c.Format]; !ok {
		err = fmt.Errorf("invalid image format: %s", c.Format)
	} else if _, ok = validColorThemes[c.Render.Theme]; !ok {
		err = fmt.Errorf("invalid color theme: %s", c.Render.Theme)
	} else if c.Render.Width < minWidth {
		err = fmt.Errorf("image width must be at least %d pixels", minWidth)
	} else if c.Render.VSWRMax <= 1 || c.Render.OverviewVSWRMax <= 1 {
		err = errors.New("VSWR axis maximum must be above 1")
	} else if c.Render.ReferenceImpedance <= 0 {
		err = errors.New("reference impedance must be positive")
	} else if c.Archive.Replay && c.Archive.Path == "" {
		err = errors.New("archive replay requires an archive path")
	}
	if err != nil {
		return err
	}

	c.OutputFile = fmt.Sprintf("%s.%s", c.Output, c.Format)
	return nil
}
