package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "TRACKY_"

var ErrMissingSessionSecret = errors.New("missing secret for session cookie (TRACKY_SESSION_SECRET)")

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Mock     bool     `koanf:"mock"`
	Frontend Frontend `koanf:"frontend"`
	Session  Session  `koanf:"session"`
	Troi     Troi     `koanf:"troi"`
	Personio Personio `koanf:"personio"`
	Google   Google   `koanf:"google"`
	Calendar Calendar `koanf:"calendar"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type Session struct {
	Secret     string `koanf:"secret"`
	MaxAgeDays int    `koanf:"maxagedays"`
	Secure     bool   `koanf:"secure"`
}

type Troi struct {
	BaseURL string `koanf:"baseurl"`
}

type Personio struct {
	BaseURL      string `koanf:"baseurl"`
	TokenURL     string `koanf:"tokenurl"`
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	// EmailDomain is appended to the Troi username to find the Personio employee.
	EmailDomain string `koanf:"emaildomain"`
}

type Google struct {
	ApiKey     string `koanf:"apikey"`
	CalendarId string `koanf:"calendarid"`
}

// Enabled reports whether a holiday calendar is configured.
func (g Google) Enabled() bool {
	return g.ApiKey != "" && g.CalendarId != ""
}

type Calendar struct {
	WindowDays int `koanf:"windowdays"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 8181,
		Frontend: Frontend{
			Enabled: false,
			Dir:     "./frontend",
		},
		Session: Session{
			MaxAgeDays: 30,
			Secure:     true,
		},
		Troi: Troi{
			BaseURL: "https://digitalservicebund.troi.software/api/v2/rest",
		},
		Personio: Personio{
			BaseURL:     "https://api.personio.de",
			TokenURL:    "https://api.personio.de/v2/auth/token",
			EmailDomain: "digitalservice.bund.de",
		},
		Calendar: Calendar{
			WindowDays: 366,
		},
	}
}

// Load reads the configuration from struct defaults, the YAML file at path and
// TRACKY_ prefixed environment variables, in that order. A .env file in the
// working directory is loaded into the environment first when present.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("error loading .env file: %v", err)
			return Application{}, err
		}
	} else {
		log.Info("Loaded environment from .env")
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if app.Session.Secret == "" {
		return Application{}, ErrMissingSessionSecret
	}
	if app.Calendar.WindowDays <= 0 {
		app.Calendar.WindowDays = defaults().Calendar.WindowDays
	}

	return app, nil
}
