package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config drives the lotteryd binary: logging identity, the round parameters
// it opens rounds with, and the draw seed commitment.
type Config struct {
	Environment      string   `toml:"Environment"`
	PricePerTicket   string   `toml:"PricePerTicket"`
	DiscountDivisor  uint32   `toml:"DiscountDivisor"`
	RewardsBreakdown []uint32 `toml:"RewardsBreakdown"`
	TreasuryFeeBps   uint32   `toml:"TreasuryFeeBps"`
	RoundDuration    int64    `toml:"RoundDurationSeconds"`
	AutoInject       bool     `toml:"AutoInject"`
	DrawSeed         string   `toml:"DrawSeed"`
}

// Load reads the configuration from path, writing a default file first when
// none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Environment) == "" {
		c.Environment = "local"
	}
	if strings.TrimSpace(c.PricePerTicket) == "" {
		c.PricePerTicket = "15"
	}
	if c.DiscountDivisor == 0 {
		c.DiscountDivisor = 300
	}
	if len(c.RewardsBreakdown) == 0 {
		c.RewardsBreakdown = []uint32{500, 960, 1430, 1910, 2390, 2810}
	}
	if c.TreasuryFeeBps == 0 {
		c.TreasuryFeeBps = 1000
	}
	if c.RoundDuration == 0 {
		c.RoundDuration = 120
	}
	if strings.TrimSpace(c.DrawSeed) == "" {
		c.DrawSeed = "lotteryd-local-seed"
	}
}

// Validate checks the fields the engine cannot re-check for us.
func (c *Config) Validate() error {
	if _, ok := c.Price(); !ok {
		return fmt.Errorf("config: invalid PricePerTicket %q", c.PricePerTicket)
	}
	if len(c.RewardsBreakdown) != 6 {
		return fmt.Errorf("config: RewardsBreakdown needs exactly 6 entries, got %d", len(c.RewardsBreakdown))
	}
	if c.RoundDuration <= 0 {
		return fmt.Errorf("config: RoundDurationSeconds must be positive")
	}
	return nil
}

// Price parses the ticket price into native units.
func (c *Config) Price() (*big.Int, bool) {
	return new(big.Int).SetString(strings.TrimSpace(c.PricePerTicket), 10)
}

// Breakdown copies the rewards breakdown into the fixed-size form the engine
// takes.
func (c *Config) Breakdown() [6]uint32 {
	var out [6]uint32
	copy(out[:], c.RewardsBreakdown)
	return out
}
