// Package config loads the service settings from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ArchiveSettings identify one XNAT instance.
type ArchiveSettings struct {
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Project is the destination project scans are exported into; unused
	// for the source archive.
	Project string `mapstructure:"project"`
}

// Settings is the full service configuration.
type Settings struct {
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Source ArchiveSettings `mapstructure:"source"`
	Target ArchiveSettings `mapstructure:"target"`
	Import struct {
		// ExportFile is the path of the FileMaker CSV export.
		ExportFile string `mapstructure:"export_file"`
	} `mapstructure:"import"`
	Export struct {
		// DownloadDir is the scratch directory scan files pass through.
		DownloadDir string `mapstructure:"download_dir"`
	} `mapstructure:"export"`
	// RowsPerPage bounds the scan-type confirmation page size.
	RowsPerPage int `mapstructure:"rows_per_page"`
}

// Load reads the settings from the given config file (optional when the
// environment provides everything) and applies REPORTING_* overrides.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("rows_per_page", 25)
	v.SetDefault("export.download_dir", filepath.Join(os.TempDir(), "imaging-report-export"))

	v.SetEnvPrefix("REPORTING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &settings, nil
}
