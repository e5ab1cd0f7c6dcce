package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Remote struct {
		Endpoint       string        `yaml:"endpoint"`
		Table          string        `yaml:"table"`
		FunctionName   string        `yaml:"function_name"`
		ScanLimit      int           `yaml:"scan_limit"`
		ScanFilter     string        `yaml:"scan_filter"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		RetryInterval  time.Duration `yaml:"retry_interval"`
	} `yaml:"remote"`
	Pipeline struct {
		RecencyWindow    time.Duration `yaml:"recency_window"`
		SimulatedLatency time.Duration `yaml:"simulated_latency"`
		DemoRefetchDelay time.Duration `yaml:"demo_refetch_delay"`
		LiveRefetchDelay time.Duration `yaml:"live_refetch_delay"`
	} `yaml:"pipeline"`
	Credentials struct {
		Path string `yaml:"path"`
	} `yaml:"credentials"`
	Cache struct {
		Enabled  bool          `yaml:"enabled"`
		TTL      time.Duration `yaml:"ttl"`
		Redis    bool          `yaml:"redis"`
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
	} `yaml:"cache"`
	Archive struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"archive"`
	Notify struct {
		Transport string   `yaml:"transport"` // log or kafka
		Brokers   []string `yaml:"brokers"`
		Topic     string   `yaml:"topic"`
	} `yaml:"notify"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("REMOTE_ENDPOINT"); v != "" {
		c.Remote.Endpoint = v
	}
	if v := os.Getenv("REMOTE_TABLE"); v != "" {
		c.Remote.Table = v
	}
	if v := os.Getenv("REMOTE_FUNCTION"); v != "" {
		c.Remote.FunctionName = v
	}
	if v := os.Getenv("NOTIFY_BROKERS"); v != "" {
		c.Notify.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Addr = v
		c.Cache.Redis = true
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Remote.Table == "" {
		c.Remote.Table = "trading-system-signals"
	}
	if c.Remote.FunctionName == "" {
		c.Remote.FunctionName = "trading-system-engine"
	}
	if c.Remote.ScanLimit <= 0 {
		c.Remote.ScanLimit = 20
	}
	if c.Remote.RequestTimeout <= 0 {
		c.Remote.RequestTimeout = 10 * time.Second
	}
	if c.Remote.RetryInterval <= 0 {
		c.Remote.RetryInterval = 30 * time.Second
	}
	if c.Pipeline.RecencyWindow <= 0 {
		c.Pipeline.RecencyWindow = 24 * time.Hour
	}
	if c.Pipeline.SimulatedLatency <= 0 {
		c.Pipeline.SimulatedLatency = 500 * time.Millisecond
	}
	if c.Pipeline.DemoRefetchDelay <= 0 {
		c.Pipeline.DemoRefetchDelay = 2 * time.Second
	}
	if c.Pipeline.LiveRefetchDelay <= 0 {
		c.Pipeline.LiveRefetchDelay = 180 * time.Second
	}
	if c.Credentials.Path == "" {
		c.Credentials.Path = "credentials.json"
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		c.Cache.TTL = 2 * time.Second
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Notify.Transport == "" {
		c.Notify.Transport = "log"
	}
	if c.Notify.Topic == "" {
		c.Notify.Topic = "signaldeck.notifications"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Remote.ScanLimit > 20 {
		return fmt.Errorf("remote.scan_limit must be at most 20, got %d", c.Remote.ScanLimit)
	}
	if c.Notify.Transport != "log" && c.Notify.Transport != "kafka" {
		return fmt.Errorf("notify.transport must be 'log' or 'kafka', got '%s'", c.Notify.Transport)
	}
	if c.Notify.Transport == "kafka" && len(c.Notify.Brokers) == 0 {
		return fmt.Errorf("notify.brokers cannot be empty for kafka transport")
	}
	if c.Archive.Enabled && c.Archive.Host == "" {
		return fmt.Errorf("archive.host is required when archive is enabled")
	}
	return nil
}
