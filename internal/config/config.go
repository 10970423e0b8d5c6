// Package config loads the gateway configuration from defaults, an optional
// YAML file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultBlockedTier is the default entry of actions.blocked_tiers.
const DefaultBlockedTier = "production"

// Config is the root configuration. It is built once at startup and handed
// to constructors by value; nothing mutates it afterwards.
type Config struct {
	Env     string        `mapstructure:"env"`
	Server  ServerConfig  `mapstructure:"server"`
	Actions ActionsConfig `mapstructure:"actions"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Presign PresignConfig `mapstructure:"presign"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// ActionsConfig controls the POST action endpoint.
type ActionsConfig struct {
	// BlockedTiers lists the environment tiers in which every action
	// request is answered with 403.
	BlockedTiers []string `mapstructure:"blocked_tiers"`
}

// AuthConfig holds the shared secret. An empty password is allowed at load
// time; the action endpoint then reports itself as not configured.
type AuthConfig struct {
	Password string `mapstructure:"password"`
}

// StorageConfig describes the S3-compatible bucket.
type StorageConfig struct {
	Driver          string `mapstructure:"driver" validate:"required,oneof=minio s3"`
	Endpoint        string `mapstructure:"endpoint" validate:"required_without=AccountID"`
	AccountID       string `mapstructure:"account_id"`
	Region          string `mapstructure:"region" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
	Bucket          string `mapstructure:"bucket" validate:"required"`
	// UseSSL overrides endpoint based detection when set.
	UseSSL *bool `mapstructure:"use_ssl"`
}

// PresignConfig holds the lifetimes of issued URLs.
type PresignConfig struct {
	UploadTTL   time.Duration `mapstructure:"upload_ttl" validate:"gt=0"`
	DownloadTTL time.Duration `mapstructure:"download_ttl" validate:"gt=0"`
	ShareTTL    time.Duration `mapstructure:"share_ttl" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ActionsBlocked reports whether the current tier disables the action
// endpoint. Production tiers are always blocked; BlockedTiers adds more.
func (c Config) ActionsBlocked() bool {
	if c.IsProduction() {
		return true
	}
	env := strings.ToLower(strings.TrimSpace(c.Env))
	if env == "" {
		return false
	}
	return slices.ContainsFunc(c.Actions.BlockedTiers, func(tier string) bool {
		return strings.EqualFold(strings.TrimSpace(tier), env)
	})
}

// IsProduction reports whether the tier is a production one.
func (c Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Env))
	return env == "prod" || env == "production"
}

// ResolvedEndpoint returns the host[:port] of the object store. When no
// endpoint is set it is derived from the Cloudflare account id.
func (s StorageConfig) ResolvedEndpoint() string {
	if s.Endpoint != "" {
		ep := strings.TrimPrefix(s.Endpoint, "https://")
		ep = strings.TrimPrefix(ep, "http://")
		return strings.TrimSuffix(ep, "/")
	}
	return s.AccountID + ".r2.cloudflarestorage.com"
}

// envAliases maps configuration keys to the environment names used by
// existing deployments, in addition to the BUCKETGATE_ prefixed names.
var envAliases = map[string][]string{
	"env":                       {"ENVIRONMENT"},
	"auth.password":             {"AUTH_PASSWORD"},
	"storage.account_id":        {"R2_ACCOUNT_ID"},
	"storage.access_key_id":     {"R2_ACCESS_KEY_ID"},
	"storage.secret_access_key": {"R2_SECRET_ACCESS_KEY"},
	"storage.bucket":            {"R2_BUCKET_NAME"},
	"storage.endpoint":          nil,
	"storage.driver":            nil,
	"storage.region":            nil,
	"storage.use_ssl":           nil,
	"server.address":            nil,
	"actions.blocked_tiers":     nil,
	"presign.upload_ttl":        nil,
	"presign.download_ttl":      nil,
	"presign.share_ttl":         nil,
	"log.level":                 nil,
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"addr":      "server.address",
	"env":       "env",
	"log-level": "log.level",
	"bucket":    "storage.bucket",
	"endpoint":  "storage.endpoint",
	"driver":    "storage.driver",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("actions.blocked_tiers", []string{DefaultBlockedTier})
	v.SetDefault("storage.driver", "minio")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("presign.upload_ttl", time.Hour)
	v.SetDefault("presign.download_ttl", time.Hour)
	v.SetDefault("presign.share_ttl", 30*time.Second)
	v.SetDefault("log.level", "info")
}

func bindEnv(v *viper.Viper) error {
	for key, aliases := range envAliases {
		prefixed := "BUCKETGATE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := append([]string{key, prefixed}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagToViperKey[f.Name]
		if !ok || !f.Changed {
			return
		}
		_ = v.BindPFlag(key, f)
	})
}

// Load builds a validated Config.
// Precedence, highest first: flags, environment, config file, defaults.
// An empty configFile looks for ./config.yaml and tolerates its absence.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	if err := bindEnv(v); err != nil {
		return Config{}, err
	}
	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
