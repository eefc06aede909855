// Package config loads tablegen.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "tablegen.yaml"

// Index sources.
const (
	SourceScan     = "scan"
	SourceManifest = "manifest"
	SourceRegistry = "registry"
)

// ErrConfigValidation is returned when a loaded configuration is invalid.
var ErrConfigValidation = errors.New("config validation error")

// Config represents the tablegen configuration.
type Config struct {
	SolutionRoot string         `yaml:"solution_root" validate:"required"`
	TemplateDir  string         `yaml:"template_dir"`
	FrontendRoot string         `yaml:"frontend_root"`
	Metadata     MetadataConfig `yaml:"metadata"`
	Projects     ProjectsConfig `yaml:"projects"`
	Index        IndexConfig    `yaml:"index"`
}

// MetadataConfig selects where table definitions are read from.
type MetadataConfig struct {
	Source string `yaml:"source" validate:"oneof=yaml sqlite3 mysql"`
	Path   string `yaml:"path" validate:"required_if=Source yaml"`
	DSN    string `yaml:"dsn" validate:"required_unless=Source yaml"`
}

// ProjectsConfig names the project-directory suffixes in the solution root.
type ProjectsConfig struct {
	BusinessSuffix   string   `yaml:"business_suffix" validate:"required"`
	RepositorySuffix string   `yaml:"repository_suffix" validate:"required"`
	WebAPISuffixes   []string `yaml:"webapi_suffixes" validate:"min=1,dive,required"`
	ControllerSuffix string   `yaml:"controller_suffix" validate:"required"`
}

// IndexConfig configures the generated-entity index used by the duplicate guard.
type IndexConfig struct {
	Sources      []string        `yaml:"sources" validate:"dive,oneof=scan manifest registry"`
	BaseTypes    []string        `yaml:"base_types" validate:"min=1,dive,required"`
	ManifestPath string          `yaml:"manifest_path" validate:"required"`
	Registry     []RegistryEntry `yaml:"registry" validate:"dive"`
}

// RegistryEntry declares an entity that exists outside the scanned sources.
type RegistryEntry struct {
	ClassName string `yaml:"class_name" validate:"required"`
	TableName string `yaml:"table_name"`
}

// Uses reports whether the index reads from the given source.
func (c IndexConfig) Uses(source string) bool {
	for _, s := range c.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// LoadConfig reads the configuration at path. A .env file next to it is
// loaded first so values can reference ${VAR}. A missing file yields the
// defaults. Relative paths are resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFile(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, fmt.Errorf("failed to load environment file: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// strict mode rejects unknown fields
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	expandConfigEnvVars(&cfg)
	resolvePaths(&cfg, filepath.Dir(path))

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func applyDefaults(c *Config) {
	if c.SolutionRoot == "" {
		c.SolutionRoot = "."
	}
	if c.Metadata.Source == "" {
		c.Metadata.Source = "yaml"
	}
	if c.Metadata.Source == "yaml" && c.Metadata.Path == "" {
		c.Metadata.Path = "tablegen.tables.yaml"
	}
	if c.Projects.BusinessSuffix == "" {
		c.Projects.BusinessSuffix = ".App"
	}
	if c.Projects.RepositorySuffix == "" {
		c.Projects.RepositorySuffix = ".Repository"
	}
	if len(c.Projects.WebAPISuffixes) == 0 {
		c.Projects.WebAPISuffixes = []string{".WebApi", "Api", ".Mvc"}
	}
	if c.Projects.ControllerSuffix == "" {
		c.Projects.ControllerSuffix = ".WebApi"
	}
	if len(c.Index.Sources) == 0 {
		c.Index.Sources = []string{SourceScan, SourceRegistry}
	}
	if len(c.Index.BaseTypes) == 0 {
		c.Index.BaseTypes = []string{"Entity"}
	}
	if c.Index.ManifestPath == "" {
		c.Index.ManifestPath = filepath.Join(".tablegen", "index.db")
	}
}

func expandConfigEnvVars(c *Config) {
	c.SolutionRoot = os.ExpandEnv(c.SolutionRoot)
	c.TemplateDir = os.ExpandEnv(c.TemplateDir)
	c.FrontendRoot = os.ExpandEnv(c.FrontendRoot)
	c.Metadata.Path = os.ExpandEnv(c.Metadata.Path)
	c.Metadata.DSN = os.ExpandEnv(c.Metadata.DSN)
	c.Index.ManifestPath = os.ExpandEnv(c.Index.ManifestPath)
}

// resolvePaths anchors relative filesystem paths at base. The metadata DSN
// is left alone since its form depends on the driver.
func resolvePaths(c *Config, base string) {
	for _, p := range []*string{
		&c.SolutionRoot,
		&c.TemplateDir,
		&c.FrontendRoot,
		&c.Metadata.Path,
		&c.Index.ManifestPath,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

var validate = validator.New()

func validateConfig(c *Config) error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrConfigValidation, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}
