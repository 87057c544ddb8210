package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/appetiteclub/floorsync/pkg/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix   = "FLOORSYNC_"
	DefaultFile = "floorsync.yaml"
)

// Paths names every collection and record under the data root. Collections
// are directories relative to the root; "" is the root itself.
type Paths struct {
	Orders         string `koanf:"orders"`
	FinishedOrders string `koanf:"finished_orders"`
	Items          string `koanf:"items"`
	FinishedItems  string `koanf:"finished_items"`
	Menu           string `koanf:"menu"`
	Stock          string `koanf:"stock"`
	Locks          string `koanf:"locks"`
	Extras         string `koanf:"extras"`
	Mailboxes      string `koanf:"mailboxes"`
	OrderCounter   string `koanf:"order_counter"`
	ItemCounter    string `koanf:"item_counter"`
	Reserved       string `koanf:"reserved"`
	Requests       string `koanf:"requests"`
}

type Sequence struct {
	OrderStart int `koanf:"order_start"`
	ItemStart  int `koanf:"item_start"`
}

type Mailbox struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	Watch        bool          `koanf:"watch"`
}

type NATS struct {
	URL    string `koanf:"url"`
	Stream bool   `koanf:"stream"`
}

type Feed struct {
	NATS    NATS   `koanf:"nats"`
	Subject string `koanf:"subject"`
}

// Config is built once at startup and passed down by pointer.
type Config struct {
	Data struct {
		Root string `koanf:"root"`
	} `koanf:"data"`
	Paths    Paths    `koanf:"paths"`
	Sequence Sequence `koanf:"sequence"`
	Mailbox  Mailbox  `koanf:"mailbox"`
	Log      struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
	Web struct {
		Port int `koanf:"port"`
	} `koanf:"web"`
	Feed Feed `koanf:"feed"`

	file string
}

// File is the config file the values were read from.
func (c *Config) File() string {
	return c.file
}

// Collections lists every directory the station needs under the data root.
func (c *Config) Collections() []string {
	p := c.Paths
	return []string{p.Orders, p.FinishedOrders, p.Items, p.FinishedItems, p.Menu, p.Stock, p.Locks, p.Extras, p.Mailboxes}
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data.root":             "data",
		"paths.orders":          "Orders",
		"paths.finished_orders": "FinishedOrders",
		"paths.items":           "Items",
		"paths.finished_items":  "FinishedItems",
		"paths.menu":            "MenuItems",
		"paths.stock":           "Stock",
		"paths.locks":           "LockFiles",
		"paths.extras":          "Extras",
		"paths.mailboxes":       "UpdateFiles",
		"paths.order_counter":   "currentOrderNumber",
		"paths.item_counter":    "currentItemNumber",
		"paths.reserved":        "reservedSupply",
		"paths.requests":        "Requests.txt",
		"sequence.order_start":  1000,
		"sequence.item_start":   1000,
		"mailbox.poll_interval": "1s",
		"mailbox.watch":         true,
		"log.level":             "info",
		"web.port":              8090,
		"feed.nats.url":         "",
		"feed.nats.stream":      false,
		"feed.subject":          "floorsync.snapshots",
	}
}

// Load reads the YAML file at path on top of the defaults and applies
// FLOORSYNC_* environment overrides. A missing or malformed file is
// rewritten with the defaults. Failing to write it is an error.
func Load(path string, logger logging.Logger) (*Config, error) {
	logger = logging.OrNoop(logger)
	if path == "" {
		path = DefaultFile
	}

	k, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	fromFile, err := loadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("config file not found, writing defaults", "file", path)
		if err := writeDefaults(k, path); err != nil {
			return nil, err
		}
	case err != nil:
		logger.Warn("malformed config file, regenerating defaults", "file", path, "error", err)
		if err := writeDefaults(k, path); err != nil {
			return nil, err
		}
	default:
		if err := k.Merge(fromFile); err != nil {
			return nil, fmt.Errorf("cannot merge config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.file = path
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	k, err := loadDefaults()
	if err != nil {
		panic(err)
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	if c.Data.Root == "" {
		errs = append(errs, errors.New("data.root is empty"))
	}
	if c.Sequence.OrderStart < 0 || c.Sequence.ItemStart < 0 {
		errs = append(errs, errors.New("sequence starts must not be negative"))
	}
	if c.Mailbox.PollInterval <= 0 {
		errs = append(errs, errors.New("mailbox.poll_interval must be positive"))
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		errs = append(errs, fmt.Errorf("web.port %d out of range", c.Web.Port))
	}
	required := []struct{ key, value string }{
		{"paths.mailboxes", c.Paths.Mailboxes},
		{"paths.locks", c.Paths.Locks},
		{"paths.order_counter", c.Paths.OrderCounter},
		{"paths.item_counter", c.Paths.ItemCounter},
		{"paths.reserved", c.Paths.Reserved},
		{"paths.requests", c.Paths.Requests},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is empty", r.key))
		}
	}
	return errors.Join(errs...)
}

func loadDefaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("cannot load config defaults: %w", err)
	}
	return k, nil
}

// loadFile parses the file on its own and checks it decodes into a valid
// Config when laid over the defaults.
func loadFile(path string) (*koanf.Koanf, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}

	probe, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	if err := probe.Merge(fk); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := probe.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fk, nil
}

func writeDefaults(k *koanf.Koanf, path string) error {
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("cannot encode default config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create default config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot create default config: %w", err)
	}
	return nil
}

// envKey maps FLOORSYNC_MAILBOX_POLL_INTERVAL to mailbox.poll_interval.
// Only the first underscore separates the section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	if section == "feed" && strings.HasPrefix(rest, "nats_") {
		return "feed.nats." + strings.TrimPrefix(rest, "nats_")
	}
	return section + "." + rest
}
