// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Survey   SurveyConfig   `yaml:"survey" mapstructure:"survey"`
	Boundary BoundaryConfig `yaml:"boundary" mapstructure:"boundary"`
	Score    ScoreConfig    `yaml:"score" mapstructure:"score"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SurveyConfig configures the child-record input.
type SurveyConfig struct {
	Path    string        `yaml:"path" mapstructure:"path"`
	Sheet   string        `yaml:"sheet" mapstructure:"sheet"`
	Columns SurveyColumns `yaml:"columns" mapstructure:"columns"`
}

// SurveyColumns maps logical survey fields to header names in the input
// file. Headers are matched case-insensitively.
type SurveyColumns struct {
	District    string `yaml:"district" mapstructure:"district"`
	Province    string `yaml:"province" mapstructure:"province"`
	Stunting    string `yaml:"stunting" mapstructure:"stunting"`
	Wasting     string `yaml:"wasting" mapstructure:"wasting"`
	Underweight string `yaml:"underweight" mapstructure:"underweight"`
}

// BoundaryConfig configures the administrative-boundary geometry input.
// NameFields is the ordered fallback list of feature properties probed for
// a feature's district name.
type BoundaryConfig struct {
	Path       string   `yaml:"path" mapstructure:"path"`
	NameFields []string `yaml:"name_fields" mapstructure:"name_fields"`
}

// ScoreConfig holds the composite-risk weights, hotspot tier thresholds,
// and the stunting bands used for the high/low risk district lists.
type ScoreConfig struct {
	StuntingWeight    float64 `yaml:"stunting_weight" mapstructure:"stunting_weight"`
	WastingWeight     float64 `yaml:"wasting_weight" mapstructure:"wasting_weight"`
	UnderweightWeight float64 `yaml:"underweight_weight" mapstructure:"underweight_weight"`

	SevereMin   float64 `yaml:"severe_min" mapstructure:"severe_min"`
	HighMin     float64 `yaml:"high_min" mapstructure:"high_min"`
	ModerateMin float64 `yaml:"moderate_min" mapstructure:"moderate_min"`

	HighRiskStunting float64 `yaml:"high_risk_stunting" mapstructure:"high_risk_stunting"`
	LowRiskStunting  float64 `yaml:"low_risk_stunting" mapstructure:"low_risk_stunting"`
}

// ExportConfig configures the output artifacts.
type ExportConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	TopN int    `yaml:"top_n" mapstructure:"top_n"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NUTRITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("survey.columns.district", "S0_D_Dist")
	v.SetDefault("survey.columns.province", "S0_C_Prov")
	v.SetDefault("survey.columns.stunting", "Stunting")
	v.SetDefault("survey.columns.wasting", "Wasting")
	v.SetDefault("survey.columns.underweight", "Underweight")
	v.SetDefault("boundary.name_fields", []string{"NAME_2", "NAME", "name"})
	v.SetDefault("score.stunting_weight", 0.6)
	v.SetDefault("score.wasting_weight", 0.3)
	v.SetDefault("score.underweight_weight", 0.1)
	v.SetDefault("score.severe_min", 40.0)
	v.SetDefault("score.high_min", 25.0)
	v.SetDefault("score.moderate_min", 15.0)
	v.SetDefault("score.high_risk_stunting", 35.0)
	v.SetDefault("score.low_risk_stunting", 20.0)
	v.SetDefault("export.dir", "out")
	v.SetDefault("export.top_n", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
