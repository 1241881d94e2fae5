package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOPOST_DATABASE_URL for database.url.
const EnvPrefix = "GOPOST"

// ErrConfigTypeRequired is returned by NewViperFromBytes without a format.
var ErrConfigTypeRequired = errors.New("config: type is required")

// Viper implements Config on spf13/viper. Every key can be overridden by an
// environment variable, see EnvPrefix.
type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at path, format taken from its extension, and
// re-reads it whenever it changes on disk. Readers call the getters per use,
// so reloaded values apply without restart.
func NewViper(path string) (*Viper, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(ev fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", path, "op", ev.Op.String(), "error", err)
			return
		}
		slog.Info("config reloaded", "path", path)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes reads configuration of the given format ("yaml", "json",
// "toml", ...) from memory. Used by tests; nothing is watched.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Viper) GetInt(key string) int { return c.v.GetInt(key) }
func (c *Viper) GetBool(key string) bool { return c.v.GetBool(key) }
func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }
func (c *Viper) GetString(key string) string { return c.v.GetString(key) }
func (c *Viper) GetSecond(key string) time.Duration { return c.duration(key, time.Second) }
func (c *Viper) GetMinute(key string) time.Duration { return c.duration(key, time.Minute) }

func (c *Viper) duration(key string, unit time.Duration) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * unit
}

// GetArray accepts either a list or a comma-separated string and drops blank
// entries. Environment overrides always arrive as the string form.
func (c *Viper) GetArray(key string) []string {
	var parts []string
	switch c.v.Get(key).(type) {
	case []any, []string:
		parts = c.v.GetStringSlice(key)
	default:
		parts = strings.Split(c.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(parts, func(s string, _ int) string { return strings.TrimSpace(s) }))
}

// Close satisfies io.Closer; viper has no watcher teardown.
func (c *Viper) Close() error {
	return nil
}
