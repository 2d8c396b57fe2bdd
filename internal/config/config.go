// Package config loads the syslog collector's persisted settings. The
// settings file is JSON; if absent at startup it is created with
// defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the recognized settings surface: the listen address/ports
// plus the concurrency and sizing knobs for the receive/decode pipeline.
type Config struct {
	UDPPort   uint16 `json:"udp_port"`
	TCPPort   uint16 `json:"tcp_port"`
	UseTCP    bool   `json:"use_tcp"`
	IPAddress string `json:"ip_address"`

	Receivers       int `json:"receivers"`
	ChannelCapacity int `json:"channel_capacity"`
	BufferPoolSize  int `json:"buffer_pool_size"`
	BufferSize      int `json:"buffer_size"`
}

// Default returns the documented defaults: UDP port 514, TCP port 6514
// (unused by the core), bind address 0.0.0.0, 10 concurrent receive
// operations, a 256-entry channel, a 256-buffer pool of 65535-byte
// buffers.
func Default() Config {
	return Config{
		UDPPort:         514,
		TCPPort:         6514,
		UseTCP:          false,
		IPAddress:       "",
		Receivers:       10,
		ChannelCapacity: 256,
		BufferPoolSize:  256,
		BufferSize:      65535,
	}
}

// BindAddress returns the configured bind address, or "0.0.0.0" (any
// address) when IPAddress is empty.
func (c Config) BindAddress() string {
	if c.IPAddress == "" {
		return "0.0.0.0"
	}
	return c.IPAddress
}

// Load reads the settings file at path. If it does not exist, it is
// created with Default() and the defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if writeErr := save(path, cfg); writeErr != nil {
				return Config{}, fmt.Errorf("creating default settings file: %w", writeErr)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading settings file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing settings file: %w", err)
	}

	applyZeroValueDefaults(&cfg)
	return cfg, nil
}

// applyZeroValueDefaults fills in zero-valued sizing/concurrency knobs
// left unset by the settings file's author.
func applyZeroValueDefaults(cfg *Config) {
	d := Default()
	if cfg.UDPPort == 0 {
		cfg.UDPPort = d.UDPPort
	}
	if cfg.TCPPort == 0 {
		cfg.TCPPort = d.TCPPort
	}
	if cfg.Receivers == 0 {
		cfg.Receivers = d.Receivers
	}
	if cfg.ChannelCapacity == 0 {
		cfg.ChannelCapacity = d.ChannelCapacity
	}
	if cfg.BufferPoolSize == 0 {
		cfg.BufferPoolSize = d.BufferPoolSize
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = d.BufferSize
	}
}

func save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
