package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-efm8/protocol"
)

// fileConfig is the YAML configuration file. Unset fields keep their defaults.
//
//	vendor_id: 0x10C4
//	product_id: 0xEAC9
//	serial: "0001A2B3"
//	verify: true
//	run: false
type fileConfig struct {
	VendorID  *uint16 `yaml:"vendor_id"`
	ProductID *uint16 `yaml:"product_id"`
	Serial    string  `yaml:"serial"`
	Verify    *bool   `yaml:"verify"`
	Run       *bool   `yaml:"run"`
}

// settings is the resolved device selection and flash behaviour.
type settings struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
	Verify    bool
	Run       bool
}

func defaultSettings() settings {
	return settings{
		VendorID:  protocol.VendorID,
		ProductID: protocol.ProductID,
		Verify:    true,
		Run:       true,
	}
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// apply overlays the configuration file onto s.
func (c *fileConfig) apply(s *settings) {
	if c.VendorID != nil {
		s.VendorID = *c.VendorID
	}
	if c.ProductID != nil {
		s.ProductID = *c.ProductID
	}
	if c.Serial != "" {
		s.Serial = c.Serial
	}
	if c.Verify != nil {
		s.Verify = *c.Verify
	}
	if c.Run != nil {
		s.Run = *c.Run
	}
}

// settings resolves defaults, then the config file, then explicitly set flags.
func (f *flags) settings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()

	if f.configPath != "" {
		cfg, err := loadConfig(f.configPath)
		if err != nil {
			return s, err
		}
		cfg.apply(&s)
	}

	fs := cmd.Flags()
	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("vid") {
		s.VendorID, _ = fs.GetUint16("vid")
	}
	if changed("pid") {
		s.ProductID, _ = fs.GetUint16("pid")
	}
	if changed("serial") {
		s.Serial, _ = fs.GetString("serial")
	}
	if changed("no-verify") {
		noVerify, _ := fs.GetBool("no-verify")
		s.Verify = !noVerify
	}
	if changed("no-run") {
		noRun, _ := fs.GetBool("no-run")
		s.Run = !noRun
	}

	return s, nil
}
