// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "StrikeWarn")
	viper.SetDefault("main.loglevel", "info")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "strikewarn.log")

	viper.SetDefault("monitor.zone", "runway-default")
	viper.SetDefault("monitor.historysize", 100)
	viper.SetDefault("monitor.responselogsize", 1000)
	viper.SetDefault("monitor.queuesize", 64)

	viper.SetDefault("deterrent.soundsdir", "predator_sounds/")
	viper.SetDefault("deterrent.volume", 0.8)
	viper.SetDefault("deterrent.stoptimeout", 2*time.Second)

	viper.SetDefault("risk.catalogpath", "")

	viper.SetDefault("database.enabled", true)
	viper.SetDefault("database.path", "strikewarn.db")

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic", "strikewarn/alerts")

	viper.SetDefault("http.enabled", true)
	viper.SetDefault("http.port", "8090")
}
