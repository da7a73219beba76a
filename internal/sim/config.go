package sim

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// FileConfig represents the complete simulation configuration file
type FileConfig struct {
	Sim        SimSettings `hcl:"sim,block"`
	Tendencies *Tendencies `hcl:"tendencies,block"`
}

// SimSettings contains run-level configuration
type SimSettings struct {
	Games          int    `hcl:"games,optional"`
	Seed           int64  `hcl:"seed,optional"`
	QuarterSeconds int    `hcl:"quarter_seconds,optional"`
	Home           string `hcl:"home,optional"`
	Away           string `hcl:"away,optional"`
	TeamsFile      string `hcl:"teams_file,optional"`
	LogLevel       string `hcl:"log_level,optional"`
}

// DefaultFileConfig returns default simulation configuration
func DefaultFileConfig() *FileConfig {
	tendencies := DefaultTendencies()
	return &FileConfig{
		Sim: SimSettings{
			Games:          100,
			Seed:           1,
			QuarterSeconds: 900,
			Home:           "SPR",
			Away:           "SHV",
			LogLevel:       "info",
		},
		Tendencies: &tendencies,
	}
}

// LoadFileConfig loads simulation configuration from an HCL file. A missing
// file yields the defaults.
func LoadFileConfig(filename string) (*FileConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultFileConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config FileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultFileConfig()
	if config.Sim.Games == 0 {
		config.Sim.Games = defaults.Sim.Games
	}
	if config.Sim.Seed == 0 {
		config.Sim.Seed = defaults.Sim.Seed
	}
	if config.Sim.QuarterSeconds == 0 {
		config.Sim.QuarterSeconds = defaults.Sim.QuarterSeconds
	}
	if config.Sim.Home == "" {
		config.Sim.Home = defaults.Sim.Home
	}
	if config.Sim.Away == "" {
		config.Sim.Away = defaults.Sim.Away
	}
	if config.Sim.LogLevel == "" {
		config.Sim.LogLevel = defaults.Sim.LogLevel
	}
	if config.Tendencies == nil {
		config.Tendencies = defaults.Tendencies
	} else {
		applyTendencyDefaults(config.Tendencies)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyTendencyDefaults(t *Tendencies) {
	defaults := DefaultTendencies()
	if t.PassRate == 0 {
		t.PassRate = defaults.PassRate
	}
	if t.CompletionRate == 0 {
		t.CompletionRate = defaults.CompletionRate
	}
	if t.SackRate == 0 {
		t.SackRate = defaults.SackRate
	}
	if t.InterceptionRate == 0 {
		t.InterceptionRate = defaults.InterceptionRate
	}
	if t.FumbleRate == 0 {
		t.FumbleRate = defaults.FumbleRate
	}
	if t.TwoPointRate == 0 {
		t.TwoPointRate = defaults.TwoPointRate
	}
	if t.MaxFieldGoal == 0 {
		t.MaxFieldGoal = defaults.MaxFieldGoal
	}
}

func validate(config *FileConfig) error {
	if config.Sim.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", config.Sim.Games)
	}
	if config.Sim.QuarterSeconds < 1 {
		return fmt.Errorf("quarter_seconds must be positive, got %d", config.Sim.QuarterSeconds)
	}
	for name, rate := range map[string]float64{
		"pass_rate":         config.Tendencies.PassRate,
		"completion_rate":   config.Tendencies.CompletionRate,
		"sack_rate":         config.Tendencies.SackRate,
		"interception_rate": config.Tendencies.InterceptionRate,
		"fumble_rate":       config.Tendencies.FumbleRate,
		"two_point_rate":    config.Tendencies.TwoPointRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, rate)
		}
	}
	return nil
}
