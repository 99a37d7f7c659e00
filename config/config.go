package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds process-level settings
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP server settings
type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	SessionSecret string `yaml:"session_secret" json:"session_secret"`
}

// DBConfig holds the database connection settings
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "glossd",
		Location: "Africa/Nairobi",
		Workdir:  "/var/glossd",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          7000,
		SessionSecret: "glossd_session_secret",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "lavenders_gloss",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/glossd/glossd.log",
	},
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "public/images/products"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file falls back to defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			nc := new(AppConfig)
			if err := yaml.Unmarshal(data, nc); err == nil {
				cfg = nc
			}
		}
	}
	setEnvValue("GLOSSD_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GLOSSD_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("GLOSSD_WEB_PORT", &cfg.Web.Port)
	setEnvValue("GLOSSD_WEB_SECRET", &cfg.Web.SessionSecret)
	setEnvValue("GLOSSD_DB_TYPE", &cfg.Database.Type)
	setEnvValue("GLOSSD_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("GLOSSD_DB_PORT", &cfg.Database.Port)
	setEnvValue("GLOSSD_DB_NAME", &cfg.Database.Name)
	setEnvValue("GLOSSD_DB_USER", &cfg.Database.User)
	setEnvValue("GLOSSD_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("GLOSSD_LOGGER_MODE", &cfg.Logger.Mode)
	return cfg
}

func setEnvValue(name string, val *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*val = cast.ToInt(v)
	}
}
