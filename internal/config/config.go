package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hpungsan/scribe/pkg/codelang"
	"github.com/hpungsan/scribe/pkg/limits"
)

// Log levels accepted in log_level.
var logLevels = []any{"trace", "debug", "info", "warn", "error", "off"}

// Config holds application configuration.
type Config struct {
	// DefaultLanguage is the code block language used when a fence has no
	// info string or names an unsupported language (non-strict mode).
	DefaultLanguage string `json:"default_language"`

	// StrictLanguages makes an unsupported fence language an error instead
	// of falling back to DefaultLanguage.
	StrictLanguages bool `json:"strict_languages,omitempty"`

	// MaxBlocksPerRequest caps top-level children per append request when batching.
	// Must be within 1..100.
	MaxBlocksPerRequest int `json:"max_blocks_per_request"`

	// LogLevel is one of trace, debug, info, warn, error, off.
	LogLevel string `json:"log_level"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool groups to disable entirely.
	// Known types: "markdown", "payload", "richtext", "codelang", "limits", "draft".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultLanguage:     string(codelang.Default),
		MaxBlocksPerRequest: limits.BlockArrays,
		LogLevel:            "info",
	}
}

// Validate checks field values after merging.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLanguage, validation.Required, validation.By(knownLanguage)),
		validation.Field(&c.MaxBlocksPerRequest, validation.Required, validation.Min(1), validation.Max(limits.BlockArrays)),
		validation.Field(&c.LogLevel, validation.In(logLevels...)),
		validation.Field(&c.DBMaxOpenConns, validation.Min(0)),
		validation.Field(&c.DBMaxIdleConns, validation.Min(0)),
	)
}

func knownLanguage(value any) error {
	s, _ := value.(string)
	if !codelang.IsValid(s) {
		return errors.New("must be a supported code language")
	}
	return nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.scribe.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.scribe) and repo (.scribe) directories.
// Repo config is found by walking upward from startDir to find the nearest .scribe/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), global), repo)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .scribe/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".scribe", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw returns a zero-valued config (not defaults) if the file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	raw, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Merge(DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.DefaultLanguage = overlay.DefaultLanguage
	if result.DefaultLanguage == "" {
		result.DefaultLanguage = base.DefaultLanguage
	}

	result.MaxBlocksPerRequest = overlay.MaxBlocksPerRequest
	if result.MaxBlocksPerRequest == 0 {
		result.MaxBlocksPerRequest = base.MaxBlocksPerRequest
	}

	result.LogLevel = strings.ToLower(strings.TrimSpace(overlay.LogLevel))
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.StrictLanguages = base.StrictLanguages || overlay.StrictLanguages

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
