package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Store     StoreConfig
	Redis     RedisConfig
	Media     MediaConfig
	Account   AccountConfig
	Ticket    TicketConfig
	Timeclock TimeclockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL  string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxConns     int
	EnsureSchema bool // crea las tablas al arrancar si no existen
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // bytes; las imágenes viajan como data URI dentro del JSON
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el adaptador de persistencia: "postgres" o "memory".
type StoreConfig struct {
	Driver string
}

// RedisConfig puente opcional de notificaciones entre instancias.
type RedisConfig struct {
	Enabled       bool
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string
}

// MediaConfig almacenamiento de imágenes (logos, fotos, firmas).
type MediaConfig struct {
	Driver      string // inline, local, s3
	UploadsPath string
	MaxWidth    int

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string // opcional: R2/MinIO
	S3PublicURL       string // opcional: CDN delante del bucket
}

// AccountConfig reglas de alta de cuentas.
type AccountConfig struct {
	EmailDomain      string
	RequireSignature bool
}

// TicketConfig reglas del ciclo de vida de tickets.
type TicketConfig struct {
	MaxClientDownloads int
}

// TimeclockConfig zona horaria usada para evaluar retardos.
type TimeclockConfig struct {
	Timezone string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "naisata-servicios"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:  getString(v, "DATABASE_URL", ""),
			Host:         getString(v, "DB_HOST", "localhost"),
			Port:         getInt(v, "DB_PORT", 5432),
			User:         getString(v, "DB_USER", "postgres"),
			Password:     getString(v, "DB_PASSWORD", ""),
			DBName:       getString(v, "DB_NAME", "naisata"),
			SSLMode:      getString(v, "DB_SSLMODE", "disable"),
			MaxConns:     getInt(v, "DB_MAX_CONNS", 25),
			EnsureSchema: getBool(v, "DB_ENSURE_SCHEMA", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "naisata-servicios"),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 3000),
			BodyLimit: getInt(v, "HTTP_BODY_LIMIT", 50*1024*1024),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "postgres"),
		},
		Redis: RedisConfig{
			Enabled:       getBool(v, "REDIS_ENABLED", false),
			Addr:          getString(v, "REDIS_ADDR", "localhost:6379"),
			Password:      getString(v, "REDIS_PASSWORD", ""),
			DB:            getInt(v, "REDIS_DB", 0),
			ChannelPrefix: getString(v, "REDIS_CHANNEL_PREFIX", "naisata:events"),
		},
		Media: MediaConfig{
			Driver:            getString(v, "MEDIA_DRIVER", "inline"),
			UploadsPath:       getString(v, "MEDIA_UPLOADS_PATH", "./uploads"),
			MaxWidth:          getInt(v, "MEDIA_MAX_WIDTH", 1600),
			S3Bucket:          getString(v, "MEDIA_S3_BUCKET", ""),
			S3Region:          getString(v, "MEDIA_S3_REGION", "us-east-1"),
			S3AccessKeyID:     getString(v, "MEDIA_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getString(v, "MEDIA_S3_SECRET_ACCESS_KEY", ""),
			S3Endpoint:        getString(v, "MEDIA_S3_ENDPOINT", ""),
			S3PublicURL:       getString(v, "MEDIA_S3_PUBLIC_URL", ""),
		},
		Account: AccountConfig{
			EmailDomain:      strings.ToLower(getString(v, "ACCOUNT_EMAIL_DOMAIN", "@naisata.com")),
			RequireSignature: getBool(v, "ACCOUNT_REQUIRE_SIGNATURE", true),
		},
		Ticket: TicketConfig{
			MaxClientDownloads: getInt(v, "TICKET_MAX_CLIENT_DOWNLOADS", 2),
		},
		Timeclock: TimeclockConfig{
			Timezone: getString(v, "TIMECLOCK_TIMEZONE", "America/Mexico_City"),
		},
	}

	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "memory" {
		return nil, fmt.Errorf("config: STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
	if cfg.Ticket.MaxClientDownloads < 1 {
		return nil, fmt.Errorf("config: TICKET_MAX_CLIENT_DOWNLOADS debe ser >= 1")
	}
	if !strings.HasPrefix(cfg.Account.EmailDomain, "@") {
		cfg.Account.EmailDomain = "@" + cfg.Account.EmailDomain
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
