package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backend identifica el motor de almacenamiento derivado de DATABASE_URL.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en main y se inyecta en cada componente.
type Config struct {
	App  AppConfig
	Log  LogConfig
	DB   DBConfig
	HTTP HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env   string // development, staging, production
	Name  string
	Debug bool // registra cada sentencia SQL en nivel debug
}

// LogConfig configuración del logger.
type LogConfig struct {
	Level string // TRACE, DEBUG, INFO, WARNING, ERROR (sin distinguir mayúsculas)
}

// DBConfig configuración del almacenamiento.
// DatabaseURL admite postgres://, postgresql://, postgresql+asyncpg://, sqlite:///ruta, file:ruta o una ruta simple.
type DBConfig struct {
	DatabaseURL string
	MaxConns    int
}

// Backend devuelve el motor indicado por DatabaseURL.
func (c DBConfig) Backend() (Backend, error) {
	u := strings.TrimSpace(c.DatabaseURL)
	switch {
	case u == "":
		return "", errors.New("DATABASE_URL vacío")
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"), strings.HasPrefix(u, "postgresql+"):
		return BackendPostgres, nil
	case strings.HasPrefix(u, "sqlite:"), strings.HasPrefix(u, "file:"):
		return BackendSQLite, nil
	case !strings.Contains(u, "://"):
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("esquema de DATABASE_URL no soportado: %s", u)
	}
}

// PostgresDSN normaliza la URL para pgx (quita el sufijo de driver, p. ej. "+asyncpg").
func (c DBConfig) PostgresDSN() string {
	u := strings.TrimSpace(c.DatabaseURL)
	if strings.HasPrefix(u, "postgresql+") {
		if i := strings.Index(u, "://"); i > 0 {
			return "postgresql" + u[i:]
		}
	}
	return u
}

// SQLitePath extrae la ruta del archivo: sqlite:///./stock.db -> ./stock.db, sqlite:///:memory: -> :memory:.
func (c DBConfig) SQLitePath() string {
	u := strings.TrimSpace(c.DatabaseURL)
	switch {
	case strings.HasPrefix(u, "sqlite:///"):
		return strings.TrimPrefix(u, "sqlite:///")
	case strings.HasPrefix(u, "sqlite://"):
		return strings.TrimPrefix(u, "sqlite://")
	case strings.HasPrefix(u, "sqlite:"):
		return strings.TrimPrefix(u, "sqlite:")
	}
	return u
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host       string
	Port       int
	CORSOrigin string // único origen permitido (UI de desarrollo)
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_NAME, DEBUG, LOG_LEVEL, HOST, PORT, DATABASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:   getString(v, "APP_ENV", "development"),
			Name:  getString(v, "APP_NAME", "stock-classification-backend"),
			Debug: getBool(v, "DEBUG", false),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "INFO"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", "sqlite:///./stock.db"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		HTTP: HTTPConfig{
			Host:       getString(v, "HOST", "0.0.0.0"),
			Port:       getInt(v, "PORT", 8000),
			CORSOrigin: getString(v, "CORS_ORIGIN", "http://localhost:5173"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza configuraciones que impedirían arrancar.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.Name) == "" {
		return errors.New("APP_NAME es requerido")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT fuera de rango: %d", c.HTTP.Port)
	}
	if strings.Contains(c.HTTP.CORSOrigin, "*") {
		return fmt.Errorf("CORS_ORIGIN no admite comodines con credenciales habilitadas: %q", c.HTTP.CORSOrigin)
	}
	if _, err := c.DB.Backend(); err != nil {
		return err
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS debe ser positivo: %d", c.DB.MaxConns)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
	return def
}
