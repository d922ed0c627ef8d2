package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Tipos de fonte de dados suportados
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Source           Source           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Dashboard        Dashboard        `mapstructure:",squash"`
	Cors             Cors             `mapstructure:",squash"`
	DashboardRefresh DashboardRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port" validate:"required"`
}

type Source struct {
	Kind  string `mapstructure:"source_kind" validate:"required,oneof=csv xlsx postgres"`
	Path  string `mapstructure:"source_path" validate:"required_unless=Kind postgres"`
	Sheet string `mapstructure:"source_sheet"`
	Table string `mapstructure:"source_table" validate:"required_if=Kind postgres"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type Dashboard struct {
	CacheEnabled   bool   `mapstructure:"dashboard_cache_enabled"`
	PriorWindow    string `mapstructure:"dashboard_prior_window" validate:"oneof=exclusive overlapping"`
	PlotlyURL      string `mapstructure:"dashboard_plotly_url" validate:"required,url"`
	CurrencySymbol string `mapstructure:"dashboard_currency_symbol"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"min=1"`
}

type DashboardRefresh struct {
	CronSchedule string        `mapstructure:"dashboard_refresh_cron" validate:"required_if=Enabled true"`
	Enabled      bool          `mapstructure:"dashboard_refresh_enabled"`
	Timeout      time.Duration `mapstructure:"dashboard_refresh_timeout" validate:"gt=0"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("SOURCE_KIND", SourceCSV)
	viper.SetDefault("SOURCE_PATH", "data.csv")
	viper.SetDefault("SOURCE_SHEET", "")
	viper.SetDefault("SOURCE_TABLE", "sales_records")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("DASHBOARD_CACHE_ENABLED", false)
	viper.SetDefault("DASHBOARD_PRIOR_WINDOW", "exclusive")
	viper.SetDefault("DASHBOARD_PLOTLY_URL", "https://cdn.plot.ly/plotly-2.35.2.min.js")
	viper.SetDefault("DASHBOARD_CURRENCY_SYMBOL", "R$")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", false)
	viper.SetDefault("DASHBOARD_REFRESH_TIMEOUT", "2m")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)
	if config.Database.SSLMode != "" {
		config.Database.DSN = fmt.Sprintf("%s?sslmode=%s", config.Database.DSN, config.Database.SSLMode)
	}

	return config, nil
}

// Validate verifica as regras de cada bloco de configuração
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	blocks := []any{c.App, c.Server, c.Source, c.Dashboard, c.Cors, c.DashboardRefresh}
	for _, block := range blocks {
		if err := validate.Struct(block); err != nil {
			return fmt.Errorf("configuração inválida: %w", err)
		}
	}

	if c.Source.Kind == SourcePostgres && c.Database.URL == "" {
		return fmt.Errorf("configuração inválida: DATABASE_URL é obrigatório para a fonte %s", SourcePostgres)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
