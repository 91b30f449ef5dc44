package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the broker connection settings.
type Config struct {
	// URI is the broker address, e.g. "tcp://broker.example.org:1883".
	URI string `yaml:"uri"`

	// KeepAlive is the MQTT keep-alive interval in seconds.
	KeepAlive int `yaml:"keep_alive"`

	// CleanSession starts the session without restoring broker state.
	CleanSession bool `yaml:"clean_session"`

	// ReconnectInterval caps the automatic reconnect delay, in seconds.
	ReconnectInterval int `yaml:"reconnect_interval"`

	// InboundBuffer is the capacity of the inbound notification channel.
	// Deliveries arriving while the channel is full are dropped and logged.
	InboundBuffer int `yaml:"inbound_buffer"`
}

// DefaultConfig returns the settings used when a field is left unset.
func DefaultConfig() Config {
	return Config{
		URI:               "tcp://localhost:1883",
		KeepAlive:         30,
		CleanSession:      true,
		ReconnectInterval: 5,
		InboundBuffer:     256,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// withDefaults fills unset numeric fields so a partially constructed Config
// still yields a working session.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.URI == "" {
		c.URI = def.URI
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = def.KeepAlive
	}
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = def.ReconnectInterval
	}
	if c.InboundBuffer <= 0 {
		c.InboundBuffer = def.InboundBuffer
	}
	return c
}
