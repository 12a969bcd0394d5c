package clubbook

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the club's operating parameters.
type Config struct {
	Currency string `yaml:"currency"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Loan struct {
		MonthlyRate     string `yaml:"monthly_rate"`      // decimal string, e.g. "0.01"
		DayCountCutover string `yaml:"day_count_cutover"` // ISO date
	} `yaml:"loan"`
}

// LoadConfig reads config from a YAML file, then applies environment
// variable overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Currency = "INR"
	cfg.Database.SQLitePath = "clubbook.db"
	cfg.Loan.MonthlyRate = "0.01"
	cfg.Loan.DayCountCutover = "2021-04-01"

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CLUBBOOK_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("CLUBBOOK_DB"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CLUBBOOK_MONTHLY_RATE"); v != "" {
		cfg.Loan.MonthlyRate = v
	}
	if v := os.Getenv("CLUBBOOK_CUTOVER"); v != "" {
		cfg.Loan.DayCountCutover = v
	}

	return cfg, nil
}

// LoanTerms converts the configured lending parameters.
func (c *Config) LoanTerms() (LoanTerms, error) {
	rate, err := decimal.NewFromString(c.Loan.MonthlyRate)
	if err != nil {
		return LoanTerms{}, fmt.Errorf("invalid monthly rate %q: %w", c.Loan.MonthlyRate, err)
	}
	cutover, err := ParseDate(c.Loan.DayCountCutover)
	if err != nil {
		return LoanTerms{}, fmt.Errorf("invalid day-count cut-over: %w", err)
	}
	return LoanTerms{MonthlyRate: rate, DayCountCutover: cutover}, nil
}
