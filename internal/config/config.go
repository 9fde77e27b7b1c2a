package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Nombres reales de las variables de entorno requeridas para la integración
// con Slack. Se usan para armar mensajes de error accionables.
const (
	EnvSlackClientID     = "SLACK_CLIENT_ID"
	EnvSlackClientSecret = "SLACK_CLIENT_SECRET"
	EnvSlackSigningKey   = "SLACK_SIGNING_SECRET"
	EnvSlackStateSecret  = "SLACK_STATE_SECRET"
	EnvSlackScopes       = "SLACK_SCOPES"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// PublicBaseURL fuerza el origin usado para el redirect_uri.
		// Si está vacío se deriva de los headers del request (forwarded-host).
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"server"`

	Slack struct {
		ClientID      string   `yaml:"client_id"`
		ClientSecret  string   `yaml:"client_secret"`
		SigningSecret string   `yaml:"signing_secret"`
		StateSecret   string   `yaml:"state_secret"`
		Scopes        []string `yaml:"scopes"`
		// StateTTL es la ventana de validez del state anti-CSRF.
		StateTTL time.Duration `yaml:"state_ttl"`
	} `yaml:"slack"`

	Store struct {
		// memory | firestore | postgres
		Driver    string `yaml:"driver"`
		Firestore struct {
			ProjectID  string `yaml:"project_id"`
			Collection string `yaml:"collection"`
		} `yaml:"firestore"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"store"`

	Cache struct {
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	AI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"ai"`

	Fetch struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"fetch"`
}

// Load lee el YAML (opcional) y aplica overrides por env.
// Si path está vacío o el archivo no existe, arranca de cero con env + defaults.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
	if c.Store.Firestore.Collection == "" {
		c.Store.Firestore.Collection = "slack_installations"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "10m"
	}
	if c.Slack.StateTTL == 0 {
		c.Slack.StateTTL = 10 * time.Minute
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.0-flash"
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 10 * time.Second
	}

	c.applyEnvOverrides()

	// validate string durations
	if c.Cache.Memory.DefaultTTL != "" {
		if _, err := time.ParseDuration(c.Cache.Memory.DefaultTTL); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// MissingRequired retorna los nombres de TODAS las variables de entorno
// requeridas para Slack que faltan, no solo la primera. Vacío = config completa.
func (c *Config) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Slack.ClientID) == "" {
		missing = append(missing, EnvSlackClientID)
	}
	if strings.TrimSpace(c.Slack.ClientSecret) == "" {
		missing = append(missing, EnvSlackClientSecret)
	}
	if strings.TrimSpace(c.Slack.SigningSecret) == "" {
		missing = append(missing, EnvSlackSigningKey)
	}
	if strings.TrimSpace(c.Slack.StateSecret) == "" {
		missing = append(missing, EnvSlackStateSecret)
	}
	if len(c.Slack.Scopes) == 0 {
		missing = append(missing, EnvSlackScopes)
	}
	return missing
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("APP_BASE_URL"); ok {
		c.Server.PublicBaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}

	// SLACK
	if v, ok := getEnvStr(EnvSlackClientID); ok {
		c.Slack.ClientID = v
	}
	if v, ok := getEnvStr(EnvSlackClientSecret); ok {
		c.Slack.ClientSecret = v
	}
	if v, ok := getEnvStr(EnvSlackSigningKey); ok {
		c.Slack.SigningSecret = v
	}
	if v, ok := getEnvStr(EnvSlackStateSecret); ok {
		c.Slack.StateSecret = v
	}
	if v, ok := getEnvCSV(EnvSlackScopes); ok && len(v) > 0 {
		c.Slack.Scopes = v
	}
	if d, ok := getEnvDur("SLACK_STATE_TTL"); ok {
		c.Slack.StateTTL = d
	}

	// STORE
	if v, ok := getEnvStr("STORE_DRIVER"); ok {
		c.Store.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("FIRESTORE_PROJECT_ID"); ok {
		c.Store.Firestore.ProjectID = v
	}
	if v, ok := getEnvStr("FIRESTORE_COLLECTION"); ok {
		c.Store.Firestore.Collection = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Store.Postgres.DSN = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}
	if v, ok := getEnvStr("CACHE_MEMORY_DEFAULT_TTL"); ok {
		c.Cache.Memory.DefaultTTL = v
	}

	// AI
	if v, ok := getEnvStr("GENAI_API_KEY"); ok {
		c.AI.APIKey = v
	}
	if v, ok := getEnvStr("GENAI_MODEL"); ok {
		c.AI.Model = v
	}

	// FETCH
	if d, ok := getEnvDur("FETCH_TIMEOUT"); ok {
		c.Fetch.Timeout = d
	}
}
