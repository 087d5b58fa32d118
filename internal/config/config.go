package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Auth               Auth               `mapstructure:",squash"`
	Assist             Assist             `mapstructure:",squash"`
	Recommendation     Recommendation     `mapstructure:",squash"`
	AffinityRebuild    AffinityRebuild    `mapstructure:",squash"`
	ClassificationSync ClassificationSync `mapstructure:",squash"`
	SecretKey          string             `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Assist é a configuração do serviço externo de geração de texto
type Assist struct {
	URL    string `mapstructure:"assist_url"`
	APIKey string `mapstructure:"assist_api_key"`
	Model  string `mapstructure:"assist_model"`
}

// Recommendation controla o tempo de vida dos resultados de análise em cache
type Recommendation struct {
	AffinityTTLMinutes         int `mapstructure:"recommendation_affinity_ttl_minutes"`
	FrequentlyBoughtTTLMinutes int `mapstructure:"recommendation_fbt_ttl_minutes"`
	DefaultLimit               int `mapstructure:"recommendation_default_limit"`
}

// AffinityRebuild agenda a reconstrução periódica do mapa de co-compra
type AffinityRebuild struct {
	CronSchedule string `mapstructure:"affinity_rebuild_cron"`
	Enabled      bool   `mapstructure:"affinity_rebuild_enabled"`
}

// ClassificationSync agenda a reclassificação noturna do cardápio completo
type ClassificationSync struct {
	CronSchedule string `mapstructure:"classification_sync_cron"`
	Enabled      bool   `mapstructure:"classification_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/menuengine")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ASSIST_URL", "")
	viper.SetDefault("ASSIST_API_KEY", "")
	viper.SetDefault("ASSIST_MODEL", "default")

	viper.SetDefault("RECOMMENDATION_AFFINITY_TTL_MINUTES", 15)
	viper.SetDefault("RECOMMENDATION_FBT_TTL_MINUTES", 30)
	viper.SetDefault("RECOMMENDATION_DEFAULT_LIMIT", 5)

	// Defaults dos agendamentos
	viper.SetDefault("AFFINITY_REBUILD_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("AFFINITY_REBUILD_ENABLED", false)

	viper.SetDefault("CLASSIFICATION_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("CLASSIFICATION_SYNC_ENABLED", false)

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
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
