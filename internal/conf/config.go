// Package conf defines the application settings and loads them from the
// configuration file and environment variables.
package conf

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/strikewarn/strikewarn-go/internal/errors"
)

// MainSettings contains application wide settings.
type MainSettings struct {
	Name     string // station name, used in logs and alert payloads
	LogLevel string // debug, info, warn, error
	Log      struct {
		Enabled bool   // true to enable file logging
		Path    string // path to log file
	}
}

// MonitorSettings contains settings for the detection pipeline.
type MonitorSettings struct {
	Zone            string // monitoring zone identifier, one history store per zone
	HistorySize     int    // bound for the communication pattern history
	ResponseLogSize int    // bound for the combined response/alert log
	QueueSize       int    // detection channel buffer between source and pipeline
}

// DeterrentSettings contains settings for predator sound playback.
type DeterrentSettings struct {
	SoundsDir   string        // directory with predator sound assets
	Volume      float64       // playback volume 0.0-1.0
	StopTimeout time.Duration // bounded wait for playback goroutine acknowledgment
}

// RiskSettings contains settings for species risk scoring.
type RiskSettings struct {
	CatalogPath string // optional species risk catalog override, YAML
}

// DatabaseSettings contains settings for alert persistence.
type DatabaseSettings struct {
	Enabled bool
	Path    string // sqlite database path
}

// MQTTSettings contains settings for the MQTT notification sink.
type MQTTSettings struct {
	Enabled  bool
	Broker   string // e.g. tcp://localhost:1883
	Topic    string
	Username string
	Password string
}

// HTTPSettings contains settings for the API server.
type HTTPSettings struct {
	Enabled bool
	Port    string
}

// Settings is the root configuration struct.
type Settings struct {
	Debug bool

	Main      MainSettings
	Monitor   MonitorSettings
	Deterrent DeterrentSettings
	Risk      RiskSettings
	Database  DatabaseSettings
	MQTT      MQTTSettings
	HTTP      HTTPSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into a new
// Settings instance and stores it as the global instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration
// file. A missing config file is not an error, defaults apply.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/strikewarn")
	viper.AddConfigPath("/etc/strikewarn")

	viper.SetEnvPrefix("strikewarn")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// Setting returns the global settings instance, loading it on first use.
func Setting() *Settings {
	settingsMutex.RLock()
	instance := settingsInstance
	settingsMutex.RUnlock()
	if instance != nil {
		return instance
	}

	instance, err := Load()
	if err != nil {
		panic(fmt.Sprintf("error loading settings: %v", err))
	}
	return instance
}
