package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"eflow-stats/internal/logging"
	"eflow-stats/internal/wateryear"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Export   ExportConfig   `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// AnalysisConfig governs water-year segmentation and index computation.
type AnalysisConfig struct {
	StartMonth      int            `mapstructure:"start_month"`
	DateColumn      string         `mapstructure:"date_column"`
	FlowColumn      string         `mapstructure:"flow_column"`
	UseMedian       bool           `mapstructure:"use_median"`
	ColwellTimeBins int            `mapstructure:"colwell_time_bins"`
	ColwellFlowBins int            `mapstructure:"colwell_flow_bins"`
	ExcludeRanges   []ExcludeRange `mapstructure:"exclude_ranges"`
}

// ExcludeRange is an inclusive date pair removed from the record before
// segmentation, in YYYY-MM-DD form.
type ExcludeRange struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

const dateLayout = "2006-01-02"

func (r ExcludeRange) parse() (wateryear.DateRange, error) {
	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return wateryear.DateRange{}, fmt.Errorf("exclude range start %q: %w", r.Start, err)
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return wateryear.DateRange{}, fmt.Errorf("exclude range end %q: %w", r.End, err)
	}
	if end.Before(start) {
		return wateryear.DateRange{}, fmt.Errorf("exclude range %s..%s ends before it starts", r.Start, r.End)
	}
	return wateryear.DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Exclusions converts the configured ranges into segmentation input.
func (c AnalysisConfig) Exclusions() ([]wateryear.DateRange, error) {
	out := make([]wateryear.DateRange, 0, len(c.ExcludeRanges))
	for _, r := range c.ExcludeRanges {
		parsed, err := r.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

// BatchConfig governs multi-site directory processing.
type BatchConfig struct {
	InputDir     string `mapstructure:"input_dir"`
	OutputDir    string `mapstructure:"output_dir"`
	CompiledFile string `mapstructure:"compiled_file"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
	ChartWidth    int `mapstructure:"chart_width"`
	ChartHeight   int `mapstructure:"chart_height"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EFLOWSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "eflowstats")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("analysis.start_month", 10)
	v.SetDefault("analysis.date_column", "datetime")
	v.SetDefault("analysis.flow_column", "q")
	v.SetDefault("analysis.use_median", false)
	v.SetDefault("analysis.colwell_time_bins", 365)
	v.SetDefault("analysis.colwell_flow_bins", 11)

	v.SetDefault("batch.input_dir", "input")
	v.SetDefault("batch.output_dir", "output")
	v.SetDefault("batch.compiled_file", "compiled_all_sites.csv")

	v.SetDefault("export.max_data_points", 100000)
	v.SetDefault("export.chart_width", 1280)
	v.SetDefault("export.chart_height", 720)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Analysis.StartMonth < 1 || c.Analysis.StartMonth > 12 {
		return fmt.Errorf("analysis.start_month must be between 1 and 12")
	}
	if c.Analysis.FlowColumn == "" {
		return fmt.Errorf("analysis.flow_column must not be empty")
	}
	if c.Analysis.ColwellTimeBins < 1 || c.Analysis.ColwellTimeBins > 365 {
		return fmt.Errorf("analysis.colwell_time_bins must be between 1 and 365")
	}
	if c.Analysis.ColwellFlowBins < 2 {
		return fmt.Errorf("analysis.colwell_flow_bins must be at least 2")
	}
	if _, err := c.Analysis.Exclusions(); err != nil {
		return err
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Export.ChartWidth <= 0 || c.Export.ChartHeight <= 0 {
		return fmt.Errorf("export chart dimensions must be greater than zero")
	}
	return nil
}
