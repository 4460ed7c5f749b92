package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/brizzai/linkedin-connector/internal/auth/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("linkedin-connector version %s, commit %s, built at %s", version, commit, date)
}

const (
	// DefaultCallbackAddr is used when the redirect URI has no usable host
	DefaultCallbackAddr = "localhost:3000"
	// DefaultCallbackPath is used when the redirect URI has no path
	DefaultCallbackPath = "/"

	envPrefix = "LINKEDIN_CONNECTOR"
)

// DefaultEnvFiles are the dotenv files loaded before the environment is read.
var DefaultEnvFiles = []string{".env", "server/.env"}

type Config struct {
	Logging     LoggingConfig  `mapstructure:"logging"`
	LinkedIn    LinkedInConfig `mapstructure:"linkedin"`
	Callback    CallbackConfig `mapstructure:"callback"`
	Post        PostConfig     `mapstructure:"post"`
	OpenBrowser bool           `mapstructure:"open_browser"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// LinkedInConfig holds the application credentials and API endpoints
type LinkedInConfig struct {
	ClientID       string        `mapstructure:"client_id"`
	ClientSecret   string        `mapstructure:"client_secret"`
	RedirectURI    string        `mapstructure:"redirect_uri"`
	AuthBaseURL    string        `mapstructure:"auth_base_url"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	Scopes         []string      `mapstructure:"scopes"`
	URNNamespace   string        `mapstructure:"urn_namespace"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CallbackConfig configures the local listener receiving the OAuth redirect
type CallbackConfig struct {
	Addr        string        `mapstructure:"addr"` // defaults to the redirect URI host
	Path        string        `mapstructure:"path"` // defaults to the redirect URI path
	Timeout     time.Duration `mapstructure:"timeout"`
	VerifyState bool          `mapstructure:"verify_state"`
}

type PostConfig struct {
	Text           string `mapstructure:"text"`
	CandidatesFile string `mapstructure:"candidates_file"`
	DryRun         bool   `mapstructure:"dry_run"`
}

// InitFlags registers command line flags on fs (without parsing)
func InitFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file (defaults to ./config.yaml when present)")
	fs.StringSlice("env-file", DefaultEnvFiles, "Dotenv files to load before reading the environment")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
	fs.String("text", "", "Publish this text instead of a random sample post")
	fs.String("candidates-file", "", "YAML file with candidate posts")
	fs.Bool("dry-run", false, "Authorize and fetch the profile but do not publish")
	fs.Bool("no-browser", false, "Do not open the authorization URL in a browser")
	fs.Duration("callback-timeout", 0, "How long to wait for the authorization redirect (0 keeps the configured value)")
}

// flagKeys maps flag names onto config keys
var flagKeys = map[string]string{
	"log-level":        "logging.level",
	"text":             "post.text",
	"candidates-file":  "post.candidates_file",
	"dry-run":          "post.dry_run",
	"callback-timeout": "callback.timeout",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.disable_stacktrace", true)
	v.SetDefault("logging.output_path", "")
	v.SetDefault("logging.append_to_file", false)
	v.SetDefault("logging.disable_console", false)

	v.SetDefault("linkedin.client_id", "")
	v.SetDefault("linkedin.client_secret", "")
	v.SetDefault("linkedin.redirect_uri", "")
	v.SetDefault("linkedin.auth_base_url", "https://www.linkedin.com/oauth/v2")
	v.SetDefault("linkedin.api_base_url", "https://api.linkedin.com/v2")
	v.SetDefault("linkedin.scopes", constants.DefaultScopes)
	v.SetDefault("linkedin.urn_namespace", constants.DefaultURNNamespace)
	v.SetDefault("linkedin.request_timeout", 30*time.Second)

	v.SetDefault("callback.addr", "")
	v.SetDefault("callback.path", "")
	v.SetDefault("callback.timeout", 5*time.Minute)
	v.SetDefault("callback.verify_state", true)

	v.SetDefault("post.text", "")
	v.SetDefault("post.candidates_file", "")
	v.SetDefault("post.dry_run", false)

	v.SetDefault("open_browser", true)
}

// Load reads the configuration from dotenv files, the environment, an
// optional YAML file and the flags in fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	envFiles := DefaultEnvFiles
	if fs != nil {
		if files, err := fs.GetStringSlice("env-file"); err == nil {
			envFiles = files
		}
	}
	loadEnvFiles(envFiles)

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// The three secrets keep the names the LinkedIn developer portal docs use
	secrets := map[string]string{
		"linkedin.client_id":     "LINKEDIN_CLIENT_ID",
		"linkedin.client_secret": "LINKEDIN_CLIENT_SECRET",
		"linkedin.redirect_uri":  "LINKEDIN_REDIRECT_URI",
	}
	for key, name := range secrets {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return nil, err
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.resolveCallback()

	return &cfg, nil
}

func loadEnvFiles(files []string) {
	for _, file := range files {
		// Missing files are fine, the environment may already hold everything
		_ = godotenv.Load(file)
	}
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	var explicit string
	if fs != nil {
		explicit, _ = fs.GetString("config")
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		// Only explicitly set flags override, so a zero duration or an
		// empty text never shadows the config file
		if !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}

	if flag := fs.Lookup("no-browser"); flag != nil && flag.Changed {
		noBrowser, err := fs.GetBool("no-browser")
		if err != nil {
			return err
		}
		v.Set("open_browser", !noBrowser)
	}
	return nil
}

// resolveCallback fills the listener address and path from the redirect URI
func (c *Config) resolveCallback() {
	u, err := url.Parse(c.LinkedIn.RedirectURI)
	if err != nil || u.Host == "" {
		u = &url.URL{}
	}

	if c.Callback.Addr == "" {
		c.Callback.Addr = DefaultCallbackAddr
		if u.Host != "" {
			host, port := u.Hostname(), u.Port()
			if port == "" {
				port = "80"
				if u.Scheme == "https" {
					port = "443"
				}
			}
			c.Callback.Addr = net.JoinHostPort(host, port)
		}
	}

	if c.Callback.Path == "" {
		c.Callback.Path = DefaultCallbackPath
		if u.Path != "" {
			c.Callback.Path = u.Path
		}
	}
}

// MissingSecrets lists the credential environment variables that are empty.
// Missing credentials are not fatal; LinkedIn rejects the exchange instead.
func (c *Config) MissingSecrets() []string {
	var missing []string
	if c.LinkedIn.ClientID == "" {
		missing = append(missing, "LINKEDIN_CLIENT_ID")
	}
	if c.LinkedIn.ClientSecret == "" {
		missing = append(missing, "LINKEDIN_CLIENT_SECRET")
	}
	if c.LinkedIn.RedirectURI == "" {
		missing = append(missing, "LINKEDIN_REDIRECT_URI")
	}
	return missing
}
