package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Locale   string // idioma para formatear importes (BCP 47)
	Currency string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool // aplica las migraciones embebidas al arrancar
	MaxConns    int
	ForceIPv4   bool // resolver el host a IPv4 (contenedores sin IPv6)
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

// JWTConfig configuración de JWT (sesiones de la WebApp).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TelegramConfig configuración del bot y de la WebApp.
type TelegramConfig struct {
	BotToken       string
	WebAppURL      string
	AdminIDs       []int64 // telegram IDs promovidos a admin al hacer /start
	PollTimeout    int     // segundos de long polling
	Debug          bool
	InitDataMaxAge time.Duration // antigüedad máxima del initData de la WebApp
}

// IsAdmin informa si telegramID figura en ADMIN_IDS.
func (c TelegramConfig) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// SessionConfig almacén de sesiones del diálogo de registro de vendedor.
type SessionConfig struct {
	Backend string        // memory | redis
	TTL     time.Duration // 0 = sin expiración
}

// RedisConfig configuración de Redis (solo si Session.Backend = redis).
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr devuelve host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, BOT_TOKEN, ADMIN_IDS, etc.
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

	adminIDs, err := parseIDs(getString(v, "ADMIN_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getString(v, "SESSION_TTL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "marketplace-bot"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Locale:   getString(v, "LOCALE", "ru"),
			Currency: getString(v, "CURRENCY", "KZT"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "marketplace"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "marketplace-bot"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		Telegram: TelegramConfig{
			BotToken:       getString(v, "BOT_TOKEN", ""),
			WebAppURL:      getString(v, "WEBAPP_URL", ""),
			AdminIDs:       adminIDs,
			PollTimeout:    getInt(v, "BOT_POLL_TIMEOUT", 60),
			Debug:          getBool(v, "BOT_DEBUG", false),
			InitDataMaxAge: time.Duration(getInt(v, "INIT_DATA_MAX_AGE_MINUTES", 1440)) * time.Minute,
		},
		Session: SessionConfig{
			Backend: getString(v, "SESSION_BACKEND", "memory"),
			TTL:     sessionTTL,
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", "localhost"),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}

	return cfg, nil
}

// parseIDs convierte "1,2, 3" en []int64{1,2,3}.
func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id inválido %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
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
		return v.GetBool(key)
	}
	return def
}
