// Package config provides run configuration with support for command-line flags,
// environment variables, .env files, and a YAML collection file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/validation"
)

// Defaults reproduce the layout the collection tooling has always used.
const (
	DefaultLayersPath   = "layers"
	DefaultOutputPath   = "output"
	DefaultCount        = 100
	DefaultNamePrefix   = "NFT #"
	DefaultDescription  = "A unique NFT from my collection"
	DefaultImageBaseURI = "ipfs://<CID>"
)

// DefaultCategories lists the trait categories bottom layer first.
var DefaultCategories = []string{"background", "skin", "drip", "mouth", "hat", "earring"}

// Config holds the run configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Paths      PathsConfig
	Collection CollectionConfig
	Generation GenerationConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	// LayersPath holds one directory per category.
	LayersPath string `validate:"required"`
	// OutputPath receives images/ and metadata/.
	OutputPath string `validate:"required"`
}

// CollectionConfig describes what gets generated.
type CollectionConfig struct {
	Count           int      `validate:"gte=1"`
	Categories      []string `validate:"min=1,unique,dive,required,excludesall=/\\"`
	NamePrefix      string
	Description     string
	ImageBaseURI    string `validate:"required"`
	BackgroundColor bool   // Include the OpenSea background_color field
}

// GenerationConfig tunes the sampling loop.
type GenerationConfig struct {
	// Seed for the trait sampler; 0 picks a time-based seed.
	Seed uint64
	// MaxDuplicateStreak aborts after this many consecutive duplicate draws; 0 never aborts.
	MaxDuplicateStreak int `validate:"gte=0"`
	// DetectExhaustion refuses runs whose count exceeds the combination space.
	DetectExhaustion bool
}

// collectionFile is the YAML shape of COLLECTION_FILE.
type collectionFile struct {
	NamePrefix   string   `yaml:"name_prefix"`
	Description  string   `yaml:"description"`
	ImageBaseURI string   `yaml:"image_base_uri"`
	Count        int      `yaml:"count"`
	Categories   []string `yaml:"categories"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. YAML collection file.
// 5. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("traitmint", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	envFile := fs.String("env-file", ".env", "Path to .env file")
	collectionPath := fs.String("collection-file", "", "Path to a YAML collection file")

	layersPath := fs.String("layers-path", "", "Directory holding one folder per category (default: layers)")
	outputPath := fs.String("output-path", "", "Directory receiving images/ and metadata/ (default: output)")

	count := fs.String("count", "", "Number of unique items to generate (default: 100)")
	categories := fs.String("categories", "", "Comma-separated categories, bottom layer first")
	namePrefix := fs.String("name-prefix", "", "Item name prefix (default: \"NFT #\")")
	description := fs.String("description", "", "Item description")
	imageBaseURI := fs.String("image-base-uri", "", "Base URI for item images (default: ipfs://<CID>)")
	backgroundColor := fs.String("background-color", "", "Include background_color in metadata (default: false)")

	seed := fs.String("seed", "", "Sampler seed, 0 for time-based (default: 0)")
	maxStreak := fs.String("max-duplicate-streak", "", "Abort after this many consecutive duplicates, 0 never (default: 0)")
	detectExhaustion := fs.String("detect-exhaustion", "", "Refuse counts larger than the combination space (default: false)")

	if err := fs.Parse(args); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid arguments")
	}

	// Load .env file if it exists (silently ignore if not found).
	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	file, err := loadCollectionFile(getConfigValue(*collectionPath, "COLLECTION_FILE", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Paths: PathsConfig{
			LayersPath: getConfigValue(*layersPath, "LAYERS_PATH", DefaultLayersPath),
			OutputPath: getConfigValue(*outputPath, "OUTPUT_PATH", DefaultOutputPath),
		},
		Collection: CollectionConfig{
			NamePrefix:      getConfigValue(*namePrefix, "NAME_PREFIX", orDefault(file.NamePrefix, DefaultNamePrefix)),
			Description:     getConfigValue(*description, "DESCRIPTION", orDefault(file.Description, DefaultDescription)),
			ImageBaseURI:    getConfigValue(*imageBaseURI, "IMAGE_BASE_URI", orDefault(file.ImageBaseURI, DefaultImageBaseURI)),
			BackgroundColor: getBoolConfigValue(*backgroundColor, "BACKGROUND_COLOR", false),
		},
		Generation: GenerationConfig{
			DetectExhaustion: getBoolConfigValue(*detectExhaustion, "DETECT_EXHAUSTION", false),
		},
	}

	defaultCount := DefaultCount
	if file.Count != 0 {
		defaultCount = file.Count
	}
	if cfg.Collection.Count, err = getIntConfigValue(*count, "ITEM_COUNT", defaultCount); err != nil {
		return nil, err
	}
	if cfg.Generation.MaxDuplicateStreak, err = getIntConfigValue(*maxStreak, "MAX_DUPLICATE_STREAK", 0); err != nil {
		return nil, err
	}

	seedStr := getConfigValue(*seed, "SEED", "0")
	if cfg.Generation.Seed, err = strconv.ParseUint(seedStr, 10, 64); err != nil {
		return nil, domainerrors.Validationf("invalid seed %q", seedStr).WithCause(err)
	}

	cfg.Collection.Categories = slices.Clone(DefaultCategories)
	if len(file.Categories) > 0 {
		cfg.Collection.Categories = file.Categories
	}
	if raw := getConfigValue(*categories, "CATEGORIES", ""); raw != "" {
		cfg.Collection.Categories = splitList(raw)
	}

	if cfg.Paths.LayersPath, err = expandPath(cfg.Paths.LayersPath); err != nil {
		return nil, fmt.Errorf("invalid layers path: %w", err)
	}
	if cfg.Paths.OutputPath, err = expandPath(cfg.Paths.OutputPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	return validation.New().Validate(c)
}

// ImagesPath is where composite images are written.
func (c *Config) ImagesPath() string {
	return filepath.Join(c.Paths.OutputPath, "images")
}

// MetadataPath is where metadata records are written.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.Paths.OutputPath, "metadata")
}

// loadCollectionFile reads the YAML collection file. An empty path yields an empty file.
func loadCollectionFile(path string) (collectionFile, error) {
	var file collectionFile
	if path == "" {
		return file, nil
	}

	data, err := os.ReadFile(path) //#nosec G304 -- Collection file path from user input is expected
	if err != nil {
		return file, domainerrors.Wrapf(err, domainerrors.CodeNotFound, "read collection file %s", path)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, domainerrors.Wrapf(err, domainerrors.CodeValidation, "parse collection file %s", path)
	}
	return file, nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
// A malformed number is a validation error.
func getIntConfigValue(flagValue, envKey string, defaultValue int) (int, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strValue)
	if err != nil {
		return 0, domainerrors.Validationf("invalid %s %q", envKey, strValue).WithCause(err)
	}
	return n, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
