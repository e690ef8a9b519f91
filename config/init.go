package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileEnv names an explicit config file. Without it config.yaml in
	// the working directory is used if present.
	ConfigFileEnv = "INFOFLOW_CONFIG"
	// EnvPrefix maps infoflow.cache to INFOFLOW_INFOFLOW_CACHE and so on.
	EnvPrefix = "INFOFLOW"
)

// Precedence, lowest first: flag defaults, config file, environment, flags
// set on the command line.
func init() {
	loadConfigFile()
	loadEnv()
	loadFlags()
}

func loadConfigFile() {
	if path, ok := os.LookupEnv(ConfigFileEnv); ok {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	// a missing file is fine
	_ = viper.ReadInConfig()
}

func loadEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}
