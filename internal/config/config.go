package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"gridpick/internal/domain"
	"gridpick/internal/eventbus"
)

// FileName is the per-directory configuration file
const FileName = ".gridpick.toml"

// Config represents the application configuration
type Config struct {
	Version int `toml:"version" validate:"gte=1"`
	// IDField names the resource field holding the id. Empty means "id".
	IDField string `toml:"id_field"`
	// Filter is an expression deciding which rows can be selected.
	Filter       string              `toml:"filter"`
	ResourceName domain.ResourceName `toml:"resource_name"`
	UISettings   UISettings          `toml:"ui"`
	Logging      Logging             `toml:"logging"`
	Output       string              `toml:"output" validate:"oneof=lines json yaml"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize               int      `toml:"page_size" validate:"gte=1,lte=500"`
	Columns                []string `toml:"columns"`
	PaginatedSelectAllText string   `toml:"paginated_select_all_text"`
	// HasMoreItems marks the loaded file as one page of a larger collection.
	HasMoreItems bool `toml:"has_more_items"`
}

// Logging configures the log file
type Logging struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	validate *validator.Validate
}

// NewConfigService creates a config service reading FileName from dir
func NewConfigService(dir string) ConfigService {
	return &configService{
		filePath: filepath.Join(dir, FileName),
		validate: validator.New(),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(dir string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(dir).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the service directory. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cs.Validate(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := cs.Validate(config); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// Validate checks a configuration against its constraints
func (cs *configService) Validate(cfg *Config) error {
	err := cs.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		return errors.Errorf("%s failed validation for tag '%s'", fieldName(fe), fe.Tag())
	}
	return err
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		UISettings: UISettings{
			PageSize: 20,
		},
		Logging: Logging{
			Level: "info",
			File:  "gridpick.log",
		},
		Output: "lines",
	}
}

// ResolvedIDField returns the id field, defaulting to "id"
func (c *Config) ResolvedIDField() string {
	if c.IDField == "" {
		return domain.IDField
	}
	return c.IDField
}
