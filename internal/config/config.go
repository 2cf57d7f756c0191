// Package config loads glommer's tunables from flags, a YAML config
// file, and GLOMMER_-prefixed environment variables via spf13/viper,
// the teacher's own configuration mechanism.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/notapresent/glommer/internal/download"
	"github.com/notapresent/glommer/internal/scheduler"
)

// Config is every tunable spec.md §6 names as having a safe default.
type Config struct {
	DSN string // storage data source name, e.g. "glommer.db"

	ChannelPoolSize int           // P_c
	EntryPoolSize   int           // P_e
	InsertBatchSize int           // insert buffer capacity N
	GlobalTimeout   time.Duration // wraps the whole run

	UserAgent          string
	RequestTimeout     time.Duration // per-request total timeout
	PerHostLimit       int           // max concurrent in-flight requests per host
	InsecureSkipVerify bool          // TLS verification toggle
}

// Default returns the documented safe defaults, assembled from the
// scheduler and downloader packages' own DefaultConfig so the values
// never drift out of sync with the components that consume them.
func Default() Config {
	sched := scheduler.DefaultConfig()
	dl := download.DefaultConfig()
	return Config{
		DSN:                "glommer.db",
		ChannelPoolSize:    sched.ChannelPoolSize,
		EntryPoolSize:      sched.EntryPoolSize,
		InsertBatchSize:    sched.InsertBatchSize,
		GlobalTimeout:      sched.GlobalTimeout,
		UserAgent:          dl.UserAgent,
		RequestTimeout:     dl.Timeout,
		PerHostLimit:       dl.PerHostLimit,
		InsecureSkipVerify: dl.InsecureSkipVerify,
	}
}

// BindFlags registers the scrape command's tunable flags on flags and
// binds each to its viper key, so precedence resolves flag > env >
// config file > default in the usual viper order.
func BindFlags(flags *pflag.FlagSet) {
	def := Default()

	flags.String("dsn", def.DSN, "storage data source name (sqlite path)")
	flags.Int("channel-pool-size", def.ChannelPoolSize, "concurrent channel workers")
	flags.Int("entry-pool-size", def.EntryPoolSize, "concurrent entry workers")
	flags.Int("insert-batch-size", def.InsertBatchSize, "entries per insert batch")
	flags.Duration("global-timeout", def.GlobalTimeout, "deadline for one full scrape run")
	flags.String("user-agent", def.UserAgent, "HTTP User-Agent header")
	flags.Duration("request-timeout", def.RequestTimeout, "per-request HTTP timeout")
	flags.Int("per-host-limit", def.PerHostLimit, "max concurrent requests per host")
	flags.Bool("insecure-skip-verify", def.InsecureSkipVerify, "skip TLS certificate verification")

	for _, name := range []string{
		"dsn", "channel-pool-size", "entry-pool-size", "insert-batch-size",
		"global-timeout", "user-agent", "request-timeout", "per-host-limit",
		"insecure-skip-verify",
	} {
		_ = viper.BindPFlag(viperKey(name), flags.Lookup(name))
	}
}

func viperKey(flagName string) string {
	return strings.ReplaceAll(flagName, "-", "_")
}

// Load reads the bound viper keys into a Config, falling back to
// Default() for any key that was never set.
func Load() Config {
	def := Default()
	insecure := def.InsecureSkipVerify
	if viper.IsSet("insecure_skip_verify") {
		insecure = viper.GetBool("insecure_skip_verify")
	}
	return Config{
		DSN:                orString(viper.GetString("dsn"), def.DSN),
		ChannelPoolSize:    orInt(viper.GetInt("channel_pool_size"), def.ChannelPoolSize),
		EntryPoolSize:      orInt(viper.GetInt("entry_pool_size"), def.EntryPoolSize),
		InsertBatchSize:    orInt(viper.GetInt("insert_batch_size"), def.InsertBatchSize),
		GlobalTimeout:      orDuration(viper.GetDuration("global_timeout"), def.GlobalTimeout),
		UserAgent:          orString(viper.GetString("user_agent"), def.UserAgent),
		RequestTimeout:     orDuration(viper.GetDuration("request_timeout"), def.RequestTimeout),
		PerHostLimit:       orInt(viper.GetInt("per_host_limit"), def.PerHostLimit),
		InsecureSkipVerify: insecure,
	}
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}

// SchedulerConfig projects Config onto scheduler.Config.
func (c Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		ChannelPoolSize: c.ChannelPoolSize,
		EntryPoolSize:   c.EntryPoolSize,
		InsertBatchSize: c.InsertBatchSize,
		GlobalTimeout:   c.GlobalTimeout,
	}
}

// DownloaderConfig projects Config onto download.Config.
func (c Config) DownloaderConfig() download.Config {
	return download.Config{
		UserAgent:          c.UserAgent,
		Timeout:            c.RequestTimeout,
		PerHostLimit:       c.PerHostLimit,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}
}

// SetConfigFile registers the search locations for the YAML config
// file (current directory plus $HOME), matching the teacher's
// initConfig idiom. An explicit path (from --config) takes precedence.
func SetConfigFile(explicit string) {
	if explicit != "" {
		viper.SetConfigFile(explicit)
		return
	}
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetConfigName(".glommer")
	viper.SetConfigType("yaml")
}

// ReadEnv wires up the GLOMMER_-prefixed environment variable lookup.
func ReadEnv() {
	viper.SetEnvPrefix("GLOMMER")
	viper.AutomaticEnv()
}

// ReadConfigFile reads the config file if one exists; a missing file
// is not an error, but a malformed one is reported.
func ReadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}
