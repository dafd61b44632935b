// Package config loads the planrun CLI's configuration the way the
// teacher's example command loads its own: a YAML file under ./config/,
// overridable by environment variables (spec.md §6: "CLI / env / config:
// none within this core; all parameters arrive as constructor values from
// the enclosing runtime" — planrun is that enclosing runtime).
package config

import (
	"github.com/spf13/viper"
)

// Application holds planrun's own settings; it never reaches the
// planner/watermark packages directly; main wires its fields into
// log.Options and GenerationParams constructor calls instead.
type Application struct {
	Debug           bool   `mapstructure:"debug"`
	LogFormat       string `mapstructure:"log_format"`
	PartitionCount  int    `mapstructure:"partition_count"`
	IdleTimeoutSecs int    `mapstructure:"idle_timeout_secs"`
}

// Load reads configName(.yml) from "." and "./config/", overlaying an
// env-suffixed variant (configName-$ENV.yml) when present, and unmarshals
// the result into dst.
func Load(dst *Application, appName, configName string) error {
	viper.SetEnvPrefix(appName)
	viper.AutomaticEnv()
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config/")

	viper.SetConfigName(configName)
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return err
		}
	}

	viper.SetConfigName(envVariant(configName))
	_ = viper.MergeInConfig()

	return viper.Unmarshal(dst)
}

func envVariant(configName string) string {
	if env := viper.GetString("env"); env != "" {
		return configName + "-" + env
	}
	return configName
}

// Default returns the Application defaults used when no config file is
// present, so planrun works out of the box.
func Default() Application {
	return Application{
		Debug:           false,
		LogFormat:       "console",
		PartitionCount:  2,
		IdleTimeoutSecs: 0,
	}
}
