package config

import (
	"strings"

	"github.com/spf13/viper"
)

type ClassifierConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

var (
	classifierCfg *ClassifierConfig
)

func GetClassifierConfig() *ClassifierConfig {
	return classifierCfg
}

func InitClassifierConfig(configName string, configPath string) (ClassifierConfig, error) {
	var cfg ClassifierConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "classifier_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix("CLASSIFIER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := v.ReadInConfig()
	if err != nil {
		return cfg, err
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	cfg.Simulation = cfg.Simulation.WithDefaults()
	classifierCfg = &cfg
	return cfg, nil
}
