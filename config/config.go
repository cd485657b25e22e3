package config

import (
	"os"
	"path"
	"strconv"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SysConfig system settings
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig http api settings
type WebConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Secret  string `yaml:"secret"` // bearer token signing key
	Swagger bool   `yaml:"swagger"`
	Metrics bool   `yaml:"metrics"`
}

// DBConfig database settings
type DBConfig struct {
	Type     string `yaml:"type"` // postgres, mysql or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logger settings
type LogConfig struct {
	Mode       string `yaml:"mode"` // production or development
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`

	randomSecret bool
}

// RandomSecret reports whether LoadConfig generated the signing key because none was configured
func (c *AppConfig) RandomSecret() bool {
	return c.randomSecret
}

// GetLogDir log directory under the workdir
func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// GetDataDir data directory under the workdir, home of sqlite files
func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "OrderDesk",
		Location: "UTC",
		Workdir:  "/var/orderdesk",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    3000,
		Swagger: true,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "orderdesk",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/orderdesk/logs/orderdesk.log",
	},
}

// LoadConfig reads cfile, falling back to the defaults when cfile is empty,
// then applies ORDERDESK_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	setEnvValue("ORDERDESK_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ORDERDESK_WEB_PORT", &cfg.Web.Port)
	setEnvValue("ORDERDESK_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("ORDERDESK_DB_TYPE", &cfg.Database.Type)
	setEnvValue("ORDERDESK_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("ORDERDESK_DB_PORT", &cfg.Database.Port)
	setEnvValue("ORDERDESK_DB_NAME", &cfg.Database.Name)
	setEnvValue("ORDERDESK_DB_USER", &cfg.Database.User)
	setEnvValue("ORDERDESK_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("ORDERDESK_LOGGER_MODE", &cfg.Logger.Mode)

	if cfg.Web.Secret == "" {
		cfg.Web.Secret = random.String(32)
		cfg.randomSecret = true
	}
	return &cfg, nil
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	p, err := strconv.Atoi(v)
	if err == nil {
		*val = p
	}
}
