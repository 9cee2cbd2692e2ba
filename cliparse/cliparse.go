package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/matchboard/models"
)

// Defaults
const (
	DefaultPort            = 3318
	DefaultSourceType      = models.SourceSheets
	DefaultWorksheet       = "Respuestas"
	DefaultDatabaseType    = "sqlite"
	DefaultCacheTTL        = time.Hour
	DefaultFetchTimeout    = 15 * time.Second
	DefaultTopN            = 10
	DefaultFormURL         = "https://forms.gle/o3kp4N79xSL1bn6E6"
	DefaultRefreshInterval = 30 * time.Second
	DefaultLogLevel        = "info"
)

type Config struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`

	// Source
	SourceType      string `yaml:"source_type" validate:"oneof=sheets csv sql"`
	SheetID         string `yaml:"sheet_id" validate:"required_if=SourceType sheets"`
	Worksheet       string `yaml:"worksheet" validate:"required_if=SourceType sheets"`
	SheetsAPIKey    string `yaml:"sheets_api_key"`
	CredentialsFile string `yaml:"credentials_file"`
	CSVLocation     string `yaml:"csv_location" validate:"required_if=SourceType csv"`
	DatabaseURL     string `yaml:"database_url" validate:"required_if=SourceType sql"`
	DatabaseType    string `yaml:"database_type" validate:"oneof=sqlite postgres"`

	// Caching
	CacheTTL     time.Duration `yaml:"cache_ttl" validate:"gt=0"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" validate:"gte=0"`

	// Presentation
	TopN    int    `yaml:"top_n" validate:"min=1,max=1000"`
	FormURL string `yaml:"form_url" validate:"omitempty,url"`

	// Manual refresh
	AdminKey        string        `yaml:"admin_key"`
	RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gt=0"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// ParseFlags reads configuration from CLI flags, the environment (after
// loading an optional .env file), and an optional YAML file, in that order
// of precedence, then applies defaults and validates the result.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configFile, envFile string

	fs := flag.NewFlagSet("matchboard", flag.ContinueOnError)

	fs.StringVar(&configFile, "config", "", "YAML config file")
	fs.StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment")

	// Network config
	fs.IntVar(&cfg.Port, "p", 0, "Server port")

	// Source config
	fs.StringVar(&cfg.SourceType, "source", "", "Nomination source (sheets, csv or sql)")
	fs.StringVar(&cfg.SheetID, "sheet-id", "", "Google spreadsheet ID")
	fs.StringVar(&cfg.Worksheet, "worksheet", "", "Worksheet name")
	fs.StringVar(&cfg.CSVLocation, "csv", "", "CSV URL or file path")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", 0, "How long a fetched table is reused")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Upper bound for one fetch")
	fs.IntVar(&cfg.TopN, "top", 0, "Rows in the leaderboard table")
	fs.StringVar(&cfg.FormURL, "form-url", "", "Nomination form URL")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", 0, "Minimum time between manual refreshes")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SheetsAPIKey, "sheets-api-key", "", "Sheets API key (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Key required by POST /refresh (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	envFileSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "env-file" {
			envFileSet = true
		}
	})
	if envFile != "" {
		// Load never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil {
			if envFileSet || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load env file: %w", err)
			}
		}
	}

	// Fall back to environment variables
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// Then to the config file
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		fileCfg, err := loadFile(configFile)
		if err != nil {
			return Config{}, err
		}
		merge(&cfg, fileCfg)
	}

	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func applyEnv(cfg *Config) error {
	if err := envInt(&cfg.Port, "PORT"); err != nil {
		return err
	}
	if err := envInt(&cfg.TopN, "TOP_N"); err != nil {
		return err
	}
	if err := envDuration(&cfg.CacheTTL, "CACHE_TTL"); err != nil {
		return err
	}
	if err := envDuration(&cfg.FetchTimeout, "FETCH_TIMEOUT"); err != nil {
		return err
	}
	if err := envDuration(&cfg.RefreshInterval, "REFRESH_INTERVAL"); err != nil {
		return err
	}

	envString(&cfg.SourceType, "SOURCE_TYPE")
	envString(&cfg.SheetID, "SHEET_ID")
	envString(&cfg.Worksheet, "WORKSHEET")
	envString(&cfg.SheetsAPIKey, "SHEETS_API_KEY")
	envString(&cfg.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	envString(&cfg.CSVLocation, "CSV_LOCATION")
	envString(&cfg.DatabaseURL, "DATABASE_URL")
	envString(&cfg.DatabaseType, "DATABASE_TYPE")
	envString(&cfg.FormURL, "FORM_URL")
	envString(&cfg.AdminKey, "ADMIN_KEY")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	return nil
}

func envString(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func envInt(dst *int, key string) error {
	if *dst != 0 {
		return nil
	}
	if s := os.Getenv(key); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid %s env variable", key)
		}
		*dst = v
	}
	return nil
}

func envDuration(dst *time.Duration, key string) error {
	if *dst != 0 {
		return nil
	}
	if s := os.Getenv(key); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid %s env variable", key)
		}
		*dst = v
	}
	return nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// merge fills the zero fields of dst from src
func merge(dst *Config, src Config) {
	orInt(&dst.Port, src.Port)
	orString(&dst.SourceType, src.SourceType)
	orString(&dst.SheetID, src.SheetID)
	orString(&dst.Worksheet, src.Worksheet)
	orString(&dst.SheetsAPIKey, src.SheetsAPIKey)
	orString(&dst.CredentialsFile, src.CredentialsFile)
	orString(&dst.CSVLocation, src.CSVLocation)
	orString(&dst.DatabaseURL, src.DatabaseURL)
	orString(&dst.DatabaseType, src.DatabaseType)
	orDuration(&dst.CacheTTL, src.CacheTTL)
	orDuration(&dst.FetchTimeout, src.FetchTimeout)
	orInt(&dst.TopN, src.TopN)
	orString(&dst.FormURL, src.FormURL)
	orString(&dst.AdminKey, src.AdminKey)
	orDuration(&dst.RefreshInterval, src.RefreshInterval)
	orString(&dst.LogLevel, src.LogLevel)
}

func applyDefaults(cfg *Config) {
	orInt(&cfg.Port, DefaultPort)
	orString(&cfg.SourceType, DefaultSourceType)
	orString(&cfg.Worksheet, DefaultWorksheet)
	orString(&cfg.DatabaseType, DefaultDatabaseType)
	orDuration(&cfg.CacheTTL, DefaultCacheTTL)
	orDuration(&cfg.FetchTimeout, DefaultFetchTimeout)
	orInt(&cfg.TopN, DefaultTopN)
	orString(&cfg.FormURL, DefaultFormURL)
	orDuration(&cfg.RefreshInterval, DefaultRefreshInterval)
	orString(&cfg.LogLevel, DefaultLogLevel)
}

func validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q check", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func orString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func orInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func orDuration(dst *time.Duration, v time.Duration) {
	if *dst == 0 {
		*dst = v
	}
}
