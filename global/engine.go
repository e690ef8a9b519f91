package global

import (
	"github.com/spf13/viper"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
	"github.com/Troublor/erebus-infoflow/config"
)

// EngineOptions builds engine options from the infoflow.* configuration.
func EngineOptions() (info_flow.Options, error) {
	opts := info_flow.DefaultOptions()
	level, err := info_flow.ParseDebugLevel(viper.GetString(config.CDebug.Key))
	if err != nil {
		return opts, err
	}
	opts.Debug = level
	opts.CacheEnabled = viper.GetBool(config.CCache.Key)
	opts.RegisterBase = info_flow.Address(viper.GetUint64(config.CRegisterBase.Key))
	opts.EnvBase = info_flow.Address(viper.GetUint64(config.CEnvBase.Key))
	return opts, opts.Validate()
}
