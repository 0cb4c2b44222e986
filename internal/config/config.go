package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rstore/internal/errors"
	"github.com/vango-dev/rstore/internal/logging"
)

const (
	// JSONFileName is the JSON configuration file name.
	JSONFileName = "rstore.json"

	// YAMLFileName is the YAML configuration file name.
	YAMLFileName = "rstore.yaml"

	// DefaultPort is the default serve port.
	DefaultPort = 8080

	// DefaultHost is the default serve host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultLivePath is where the live websocket is served.
	DefaultLivePath = "/live"

	// DefaultCountryURL is the country resource base URL.
	DefaultCountryURL = "http://country.local/api/Country"

	// DefaultProductURL is the product resource base URL.
	DefaultProductURL = "http://localhost:5000/product"
)

// Config represents a complete rstore configuration file.
type Config struct {
	// Resources maps a resource name to its base URL.
	Resources map[string]string `json:"resources,omitempty" yaml:"resources,omitempty"`

	// Serve contains the local server settings.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Live contains live view settings.
	Live LiveConfig `json:"live,omitempty" yaml:"live,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains the settings for 'rstore serve'.
type ServeConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LiveConfig contains live view settings.
type LiveConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from dir. It looks for rstore.json first, then
// rstore.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("R121").
		WithDetail("No " + JSONFileName + " or " + YAMLFileName + " found in " + dir).
		WithSuggestion("Create " + JSONFileName + " or pass --config")
}

// LoadFile reads configuration from path. The format follows the
// extension: .yaml and .yml are YAML, everything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R121").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("R120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("R120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("R120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Resources == nil {
		c.Resources = make(map[string]string)
	}
	if _, ok := c.Resources["country"]; !ok {
		c.Resources["country"] = DefaultCountryURL
	}
	if _, ok := c.Resources["product"]; !ok {
		c.Resources["product"] = DefaultProductURL
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = string(logging.FormatText)
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Live.Path == "" {
		c.Live.Path = DefaultLivePath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("R122").
			WithDetail("serve.port must be between 0 and 65535")
	}
	for name, raw := range c.Resources {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("R122").
				WithDetail("resources." + name + " is not an absolute URL: " + raw)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("R122").
			WithDetail("log.format must be text or json, got " + c.Log.Format)
	}
	for _, p := range []string{c.Metrics.Path, c.Live.Path} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("R122").
				WithDetail("paths must start with '/': " + p)
		}
	}
	return nil
}

// ResourceURL returns the base URL for the named resource.
func (c *Config) ResourceURL(name string) (string, error) {
	u, ok := c.Resources[name]
	if !ok || u == "" {
		return "", errors.New("R130").
			WithDetail("No base URL configured for resource " + strconv.Quote(name))
	}
	return u, nil
}

// ServeAddress returns host:port for the local server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// Logging returns the logger settings described by the config.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{JSONFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("R121").
				WithDetail("No configuration found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root, or
// returns the defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.CodeOf(err) == "R121" {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
