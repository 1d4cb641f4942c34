package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// defaultMaxTimelines is the free-tier cap on the number of timelines
// a journal may hold. Overridable via config or environment; an
// explicit zero lifts the cap.
const defaultMaxTimelines = 10

type Config interface {
	BasePath() string
	MaxTimelines() int
	DefaultTimeline() string
}

func LoadConfig() (Config, error) {
	// Walk the file tree from here backwards looking for a .chrono file.
	viper.SetDefault("path", "~/.chrono.db")
	viper.SetDefault("entitlements.max_timelines", defaultMaxTimelines)
	viper.SetDefault("timeline", "Journal")
	viper.SetConfigName(".chrono") // .yaml is implicit
	viper.SetEnvPrefix("CHRONO")
	viper.AutomaticEnv()

	if override := os.Getenv("CHRONO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:      path,
		Timelines: viper.GetInt("entitlements.max_timelines"),
		Timeline:  viper.GetString("timeline"),
	}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	Timelines int    `json:"maxTimelines"`
	Timeline  string `json:"timeline"`
}

func (f *fileConfig) BasePath() string { return f.Path }

// MaxTimelines reports the timeline cap; zero means unlimited.
func (f *fileConfig) MaxTimelines() int {
	if f.Timelines < 0 {
		return defaultMaxTimelines
	}
	return f.Timelines
}

func (f *fileConfig) DefaultTimeline() string {
	if f.Timeline == "" {
		return "Journal"
	}
	return f.Timeline
}

// SaveDefaultTimeline records which timeline commands open when no
// --timeline flag is given. Creates ~/.chrono.yaml when no config file
// exists yet.
func SaveDefaultTimeline(name string) error {
	viper.Set("timeline", name)
	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("store: write config: %w", err)
		}
		home, herr := homedir.Dir()
		if herr != nil {
			return fmt.Errorf("store: resolve home: %w", herr)
		}
		if err := viper.WriteConfigAs(home + "/.chrono.yaml"); err != nil {
			return fmt.Errorf("store: write config: %w", err)
		}
	}
	return nil
}
