package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper do .env e das variáveis de ambiente).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Upload    UploadConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Channels  ChannelsConfig
	Payment   PaymentConfig
	Jobs      JobsConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	Version    string
	LogLevel   string
	EnableDocs bool
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// ConnectionString devolve DATABASE_URL se definido, senão o DSN montado por DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN monta a connection string com URL encoding da senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração do token de acesso.
type JWTConfig struct {
	Secret     string
	Algorithm  string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig limite de requisições por IP.
type RateLimitConfig struct {
	Enabled   bool
	PerMinute int
}

// UploadConfig limites do upload de base.
type UploadConfig struct {
	Dir               string
	MaxSizeMB         int
	PreviewTTLMinutes int
	MaxPreviewRows    int
}

// MaxBytes devolve o tamanho máximo aceito em bytes.
func (c UploadConfig) MaxBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// RedisConfig conexão do cache de previews. Addr vazio usa o store em memória.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig armazenamento de objetos (MinIO/S3). Endpoint vazio grava em disco.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ChannelsConfig provedores de WhatsApp, voz e SMS.
type ChannelsConfig struct {
	ProviderURL    string
	WhatsAppAPIKey string
	VoiceAPIKey    string
	SMSAPIKey      string
	WebhookSecret  string // X-Webhook-Secret exigido em /communication/webhook
}

// PaymentConfig gateway de pagamentos.
type PaymentConfig struct {
	GatewayURL    string
	GatewayAPIKey string
	WebhookSecret string // X-Webhook-Secret exigido em /payments/webhook
}

// JobsConfig agenda dos jobs (cron com campo de segundos).
type JobsConfig struct {
	OverdueCron string
}

// Load lê a configuração do arquivo .env (se existir) e das variáveis de ambiente.
// As variáveis de ambiente têm prioridade.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // sem .env seguimos só com o ambiente

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "Cordoba Fintech API"),
			Version:    getString(v, "VERSION", "1.0.0"),
			LogLevel:   strings.ToLower(getString(v, "LOG_LEVEL", "info")),
			EnableDocs: getBool(v, "ENABLE_DOCS", true),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cordoba"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "SECRET_KEY", ""),
			Algorithm:  getString(v, "ALGORITHM", "HS256"),
			Expiration: getInt(v, "ACCESS_TOKEN_EXPIRE_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "cordoba-fintech"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8000),
			CORSOrigins: splitList(getString(v, "CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		RateLimit: RateLimitConfig{
			Enabled:   getBool(v, "ENABLE_RATE_LIMIT", false),
			PerMinute: getInt(v, "RATE_LIMIT_PER_MINUTE", 60),
		},
		Upload: UploadConfig{
			Dir:               getString(v, "UPLOAD_DIR", "./uploads"),
			MaxSizeMB:         getInt(v, "MAX_UPLOAD_SIZE_MB", 10),
			PreviewTTLMinutes: getInt(v, "PREVIEW_TTL_MINUTES", 30),
			MaxPreviewRows:    getInt(v, "MAX_PREVIEW_ROWS", 100),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:  getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey: getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey: getString(v, "STORAGE_SECRET_KEY", ""),
			Bucket:    getString(v, "STORAGE_BUCKET", "cordoba-uploads"),
			UseSSL:    getBool(v, "STORAGE_USE_SSL", false),
		},
		Channels: ChannelsConfig{
			ProviderURL:    getString(v, "CHANNEL_PROVIDER_URL", ""),
			WhatsAppAPIKey: getString(v, "WHATSAPP_API_KEY", ""),
			VoiceAPIKey:    getString(v, "VOICE_API_KEY", ""),
			SMSAPIKey:      getString(v, "SMS_API_KEY", ""),
			WebhookSecret:  getString(v, "CHANNEL_WEBHOOK_SECRET", ""),
		},
		Payment: PaymentConfig{
			GatewayURL:    getString(v, "PAYMENT_GATEWAY_URL", ""),
			GatewayAPIKey: getString(v, "PAYMENT_GATEWAY_API_KEY", ""),
			WebhookSecret: getString(v, "PAYMENT_WEBHOOK_SECRET", ""),
		},
		Jobs: JobsConfig{
			OverdueCron: getString(v, "OVERDUE_CRON", "0 0 3 * * *"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: SECRET_KEY é obrigatório")
	}
	if !strings.EqualFold(cfg.JWT.Algorithm, "HS256") {
		return nil, fmt.Errorf("config: algoritmo JWT não suportado: %s", cfg.JWT.Algorithm)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
