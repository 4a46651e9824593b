package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/rolevend"
	ConfigFileName    = "rolevend.yml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "ROLEVEND_"
)

// Config is the immutable service configuration. It is loaded once at
// startup and passed into each component at construction; nothing reads it
// as ambient global state.
type Config struct {
	// Region is the cloud region the authority, notifier and template
	// bucket live in.
	Region string `yaml:"region"`

	// AccountID is the cloud account roles are provisioned in.
	AccountID string `yaml:"account_id"`

	// BindAddress and Port configure the HTTP API listener.
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// MFARequired rejects any request whose MFA flag is unset.
	MFARequired bool `yaml:"mfa_required"`

	// AllowedNetworks is the CIDR allow list for request origins. A request
	// carrying a source address outside every range is rejected; malformed
	// addresses fail closed.
	AllowedNetworks []string `yaml:"allowed_networks"`

	// AllowedDepartments scopes the trust document's principal-tag
	// condition.
	AllowedDepartments []string `yaml:"allowed_departments"`

	// CredentialTTLCeiling caps, in seconds, the validity window of any one
	// credential issue regardless of the session's remaining lifetime.
	CredentialTTLCeiling int `yaml:"credential_ttl_ceiling"`

	// TemplatesBucket names the blob bucket for policy templates when the
	// S3-backed template store is selected. Empty means database templates.
	TemplatesBucket string `yaml:"templates_bucket"`

	// NotificationTopic is the alerting topic for break-glass events. Empty
	// disables notification.
	NotificationTopic string `yaml:"notification_topic"`

	// TokenTTL is the lifetime, in seconds, of API bearer tokens minted by
	// "rolevendctl token generate".
	TokenTTL int `yaml:"token_ttl"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Region:               "us-east-1",
		BindAddress:          "0.0.0.0",
		Port:                 8080,
		MFARequired:          true,
		AllowedNetworks:      []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		AllowedDepartments:   []string{"Engineering", "DevOps", "Security"},
		CredentialTTLCeiling: 3600,
		TokenTTL:             28800,
	}
}

// Load reads the config file (if present) over the defaults, then applies
// ROLEVEND_* environment overrides. The returned value is a snapshot;
// later environment changes are not observed.
func Load(dir string) (Config, error) {
	cfg := Default()

	if dir == "" {
		dir = DefaultConfigPath
	}
	path := dir + "/" + ConfigFileName
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment is a valid deployment.
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv(EnvPrefix + "ACCOUNT_ID"); v != "" {
		cfg.AccountID = v
	}
	if v := os.Getenv(EnvPrefix + "BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv(EnvPrefix + "PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv(EnvPrefix + "MFA_REQUIRED"); v != "" {
		cfg.MFARequired = v != "false" && v != "0" && v != "no"
	}
	if v := os.Getenv(EnvPrefix + "ALLOWED_NETWORKS"); v != "" {
		cfg.AllowedNetworks = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "ALLOWED_DEPARTMENTS"); v != "" {
		cfg.AllowedDepartments = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "CREDENTIAL_TTL_CEILING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CredentialTTLCeiling = n
		}
	}
	if v := os.Getenv(EnvPrefix + "TEMPLATES_BUCKET"); v != "" {
		cfg.TemplatesBucket = v
	}
	if v := os.Getenv(EnvPrefix + "NOTIFICATION_TOPIC"); v != "" {
		cfg.NotificationTopic = v
	}
	if v := os.Getenv(EnvPrefix + "TOKEN_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TokenTTL = n
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the pieces that would otherwise fail obscurely at request
// time.
func (c Config) Validate() error {
	for _, cidr := range c.AllowedNetworks {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid allowed network %q: %w", cidr, err)
		}
	}
	if c.CredentialTTLCeiling < 900 {
		return fmt.Errorf("credential_ttl_ceiling must be at least 900 seconds, got %d", c.CredentialTTLCeiling)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
