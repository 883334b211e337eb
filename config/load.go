package config

import (
	"lendity/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDITY")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)

	return nil
}

func defaultConfig(config *core.Config) {
	if config.Oracle.MaxStaleness <= 0 {
		config.Oracle.MaxStaleness = 60
	}

	if len(config.Oracle.Feeds) == 0 {
		config.Oracle.Feeds = map[string]string{
			"sol":  "sol-usd",
			"usdc": "usdc-usd",
		}
	}

	if config.App.Port <= 0 {
		config.App.Port = 8080
	}
}
