package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the structure of config.yml used by the tool.
// Fields left out of the file keep the values of Default.
type Config struct {
	Input struct {
		Sheet           string   `yaml:"sheet"`
		CodeSeparator   string   `yaml:"code_separator"`
		PeriodProbeRows int      `yaml:"period_probe_rows"`
		DateLayouts     []string `yaml:"date_layouts"`
		Columns         Columns  `yaml:"columns"`
	} `yaml:"input"`
	Aggregation struct {
		ChunkPattern []int    `yaml:"chunk_pattern"`
		ShiftLabels  []string `yaml:"shift_labels"`
		TotalDivisor float64  `yaml:"total_divisor"`
	} `yaml:"aggregation"`
	Report struct {
		FilePrefix string `yaml:"file_prefix"`
		Font       string `yaml:"font"`
		CreditNote string `yaml:"credit_note"`
		CSV        bool   `yaml:"csv"`
	} `yaml:"report"`
	Web struct {
		Addr        string `yaml:"addr"`
		MaxUploadMB int    `yaml:"max_upload_mb"`
	} `yaml:"web"`
}

// Columns holds spreadsheet column letters of the MV1 sheet.
type Columns struct {
	ActivityCode string `yaml:"activity_code"`
	Debit        string `yaml:"debit"`
	OpenDate     string `yaml:"open_date"`
	OpenHour     string `yaml:"open_hour"`
	Duration     string `yaml:"duration"`
}

// Default returns the layout of the MV1 export as produced today.
func Default() *Config {
	var c Config
	c.Input.CodeSeparator = "T"
	c.Input.PeriodProbeRows = 9
	c.Input.DateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02", "02/01/2006 15:04", "02/01/2006"}
	c.Input.Columns = Columns{ActivityCode: "C", Debit: "D", OpenDate: "J", OpenHour: "K", Duration: "L"}
	c.Aggregation.ChunkPattern = []int{15, 9}
	c.Aggregation.ShiftLabels = []string{"N", "J"}
	c.Aggregation.TotalDivisor = 20
	c.Report.FilePrefix = "MV2"
	c.Report.Font = "Book Antiqua"
	c.Report.CreditNote = "Generated by MV2 Creator app - by Anas Asimi - 2025"
	c.Web.Addr = ":8080"
	c.Web.MaxUploadMB = 20
	return &c
}

// Load parses the YAML configuration file at path on top of Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return c, nil
}

// Resolve loads the file named by CONFIG_PATH (default ./config.yml).
// A missing file yields Default.
func Resolve() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.yml"
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config.default", "path", path)
		return Default(), nil
	}
	return c, err
}
