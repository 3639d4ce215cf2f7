package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SecretValue string

func (s SecretValue) String() string {
	return "****"
}

func (s SecretValue) Value() string {
	return string(s)
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	FilePath string `mapstructure:"file_path"`
}

type EngineConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Classifier ClassifierClient `mapstructure:"classifier"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
	History    HistoryConfig    `mapstructure:"history"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// ClassifierClient points the engine at the remote classification service.
type ClassifierClient struct {
	BaseURL string `mapstructure:"base_url"`
	// TimeoutMS of 0 leaves the call without a deadline.
	TimeoutMS int             `mapstructure:"timeout_ms"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
}

// DiscoveryConfig locates classifier pods in kubernetes when no base url is set.
type DiscoveryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	InCluster      bool   `mapstructure:"in_cluster"`
	KubeConfigPath string `mapstructure:"kube_config_path"`
	Namespace      string `mapstructure:"namespace"`
	LabelKey       string `mapstructure:"label_key"`
	LabelValue     string `mapstructure:"label_value"`
}

func (d DiscoveryConfig) Namespaces() []string {
	if d.Namespace == "" {
		return nil
	}
	return []string{d.Namespace}
}

func (c ClassifierClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

type SimulationConfig struct {
	BasePID    int `mapstructure:"base_pid"`
	DebounceMS int `mapstructure:"debounce_ms"`
	MaxSpeed   int `mapstructure:"max_speed"`
	FrameMS    int `mapstructure:"frame_ms"`
	// Seed of 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

const (
	DefaultBasePID    = 5000
	DefaultDebounceMS = 400
	DefaultMaxSpeed   = 10
	DefaultFrameMS    = 50
)

// WithDefaults fills unset simulation knobs.
func (s SimulationConfig) WithDefaults() SimulationConfig {
	if s.BasePID <= 0 {
		s.BasePID = DefaultBasePID
	}
	if s.DebounceMS <= 0 {
		s.DebounceMS = DefaultDebounceMS
	}
	if s.MaxSpeed <= 0 {
		s.MaxSpeed = DefaultMaxSpeed
	}
	if s.FrameMS <= 0 {
		s.FrameMS = DefaultFrameMS
	}
	return s
}

func (s SimulationConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

func (s SimulationConfig) Frame() time.Duration {
	return time.Duration(s.FrameMS) * time.Millisecond
}

type MongoDBConfig struct {
	Database    string      `mapstructure:"database"`
	CAPem       SecretValue `mapstructure:"ca_pem"`
	CAPemEnable bool        `mapstructure:"ca_pem_enable"`
	User        string      `mapstructure:"user"`
	Password    SecretValue `mapstructure:"password"`
	Port        string      `mapstructure:"port"`
	Host        string      `mapstructure:"host"`
	Options     string      `mapstructure:"options"`
}

func (mc MongoDBConfig) GetURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/?%s", mc.User, mc.Password.Value(), mc.Host, mc.Port, mc.Options)
}

// Enabled reports whether a mongo host is configured; without one history is kept in memory.
func (mc MongoDBConfig) Enabled() bool {
	return mc.Host != ""
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

type TracingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	OutputFile string `mapstructure:"output_file"`
}

var (
	engineCfg *EngineConfig
)

func GetEngineConfig() *EngineConfig {
	return engineCfg
}

func InitEngineConfig(configName string, configPath string) (EngineConfig, error) {
	var cfg EngineConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "engine_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix("ENGINE")
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
	engineCfg = &cfg
	return cfg, nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
