package cmd

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halfpie/pietree/renderer"
)

// Config holds the application settings read from the YAML config file.
type Config struct {
	// Document is the default portfolio document path.
	Document string `yaml:"document"`
	// Benchmarks are the reference symbols fetched alongside the
	// portfolio for comparative charting.
	Benchmarks []string `yaml:"benchmarks"`
	// Currency is the display currency for reports.
	Currency string `yaml:"currency"`
	// FetchIntervalMS is the enforced delay between provider requests.
	FetchIntervalMS int `yaml:"fetch_interval_ms"`
}

func defaultConfig() Config {
	return Config{
		Document:        "pietree.json",
		Benchmarks:      []string{"SPY", "QQQ"},
		Currency:        "USD",
		FetchIntervalMS: 1200,
	}
}

var (
	configOnce sync.Once
	appConfig  Config
)

// AppConfig loads the config file once. A missing file means defaults; a
// malformed one is reported on first use.
func AppConfig() Config {
	configOnce.Do(func() {
		appConfig = defaultConfig()
		path := *configFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return
			}
			path = filepath.Join(home, ".pietree.yaml")
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return // defaults
		}
		if err := yaml.Unmarshal(content, &appConfig); err != nil {
			logger := Logger()
			logger.Warn().Str("path", path).Err(err).Msg("ignoring malformed config")
			appConfig = defaultConfig()
			return
		}
		if appConfig.Currency != "" {
			renderer.DisplayCurrency = appConfig.Currency
		}
	})
	return appConfig
}

// FetchInterval returns the configured minimum delay between provider requests.
func FetchInterval() time.Duration {
	return time.Duration(AppConfig().FetchIntervalMS) * time.Millisecond
}
