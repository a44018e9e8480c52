package config

import (
	"time"

	"CineReel.com/pkg/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

func Init() {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")

	configPaths := []string{
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
		applyDefaults()
		return
	}

	logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())

	ConfigInfo.Api.BaseUrl = viper.GetString("api.base_url")
	ConfigInfo.Api.TimeoutMs = viper.GetInt("api.timeout_ms")
	ConfigInfo.Api.PageSize = viper.GetInt("api.page_size")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")

	ConfigInfo.Log.Level = viper.GetString("log.level")

	applyDefaults()

	if lvl, err := logrus.ParseLevel(ConfigInfo.Log.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	logrus.Infof("Config loaded - API base: %s, timeout: %dms, page size: %d",
		ConfigInfo.Api.BaseUrl, ConfigInfo.Api.TimeoutMs, ConfigInfo.Api.PageSize)
}

func applyDefaults() {
	if ConfigInfo.Api.TimeoutMs <= 0 {
		ConfigInfo.Api.TimeoutMs = constants.DefaultRequestTimeoutMs
	}
	if ConfigInfo.Api.PageSize <= 0 {
		ConfigInfo.Api.PageSize = constants.DefaultPageSize
	}
	if ConfigInfo.Log.Level == "" {
		ConfigInfo.Log.Level = "info"
	}
}

// ApiTimeout returns the configured request timeout as a duration.
func ApiTimeout() time.Duration {
	return time.Duration(ConfigInfo.Api.TimeoutMs) * time.Millisecond
}
