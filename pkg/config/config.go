package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/forms/config"
	ConfigFileName    = "forms.yml"
)

// FormsConfig holds all plugin configuration settings
type FormsConfig struct {
	// ServiceAccountUser is the login name of the forms admin service account
	ServiceAccountUser string `yaml:"service_account_user" json:"service_account_user"`

	// ServiceAccountPassword is the password of the forms admin service account
	ServiceAccountPassword string `yaml:"service_account_password" json:"service_account_password"`

	// SessionTokenSecret is the HS256 secret shared with the host webapp,
	// used to verify caller session tokens
	SessionTokenSecret string `yaml:"session_token_secret" json:"session_token_secret"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *FormsConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *FormsConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *FormsConfig {
	return &FormsConfig{
		ServiceAccountUser: "formmaster",
		TrustedProxies:     []string{},
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*FormsConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("FORMS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig FormsConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"service_account_user", "service_account_password",
		"session_token_secret", "trusted_proxies",
	}
}

func (c *FormsConfig) applyFileConfig(file *FormsConfig) {
	if file.ServiceAccountUser != "" {
		c.ServiceAccountUser = file.ServiceAccountUser
		c.sources["service_account_user"] = "file"
	}
	if file.ServiceAccountPassword != "" {
		c.ServiceAccountPassword = file.ServiceAccountPassword
		c.sources["service_account_password"] = "file"
	}
	if file.SessionTokenSecret != "" {
		c.SessionTokenSecret = file.SessionTokenSecret
		c.sources["session_token_secret"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
}

func (c *FormsConfig) applyEnvConfig() {
	if val := os.Getenv("FORMS_SERVICE_ACCOUNT_USER"); val != "" {
		c.ServiceAccountUser = val
		c.sources["service_account_user"] = "environment"
	}
	if val := os.Getenv("FORMS_SERVICE_ACCOUNT_PASSWORD"); val != "" {
		c.ServiceAccountPassword = val
		c.sources["service_account_password"] = "environment"
	}
	if val := os.Getenv("FORMS_SESSION_TOKEN_SECRET"); val != "" {
		c.SessionTokenSecret = val
		c.sources["session_token_secret"] = "environment"
	}
	if val := os.Getenv("FORMS_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *FormsConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *FormsConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// HasServiceCredentials reports whether both service account credentials
// are configured.
func (c *FormsConfig) HasServiceCredentials() bool {
	return c.ServiceAccountUser != "" && c.ServiceAccountPassword != ""
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *FormsConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *FormsConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.ServiceAccountUser == "" {
		return fmt.Errorf("service_account_user must not be empty")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. Secrets are masked.
func (c *FormsConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "service_account_user", Value: c.ServiceAccountUser, Source: c.Source("service_account_user")},
		{Name: "service_account_password", Value: mask(c.ServiceAccountPassword), Source: c.Source("service_account_password")},
		{Name: "session_token_secret", Value: mask(c.SessionTokenSecret), Source: c.Source("session_token_secret")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
	}
}

// FormatText returns a text representation of the configuration
func (c *FormsConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *FormsConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
