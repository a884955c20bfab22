package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/theflywheel/htable"
	"github.com/urfave/cli/v3"
)

const envPrefix = "HTABLE_"

// Config holds the bench settings.
type Config struct {
	Keys            int    `koanf:"keys" json:"keys"`
	KeyKind         string `koanf:"key-kind" json:"key_kind"`
	Hasher          string `koanf:"hasher" json:"hasher"`
	Budget          int64  `koanf:"budget" json:"budget,omitempty"`
	InitialCapacity int    `koanf:"initial-capacity" json:"initial_capacity"`
	Format          string `koanf:"format" json:"-"`
}

func defaultConfig() Config {
	return Config{
		Keys:            100_000,
		KeyKind:         "u64",
		Hasher:          "xxhash",
		InitialCapacity: htable.DefaultCapacity,
		Format:          "text",
	}
}

// loadConfig layers, lowest priority first: defaults, the config file at path
// (if any), then HTABLE_* environment variables. Flags are applied after.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := loadConfigFromPath(k, path); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	err := k.Load(env.ProviderWithValue(envPrefix, "", func(key, value string) (string, interface{}) {
		// HTABLE_KEY_KIND -> key-kind
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, envPrefix), "_", "-")), value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("error loading environment variables: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

func loadConfigFromPath(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch filepath.Ext(path) {
	case ".json":
		parser = json.Parser()
	default:
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("config file must be JSON or YAML: %w", err)
	}
	return nil
}

// applyFlags overrides cfg with every flag set explicitly on the command line.
func applyFlags(cmd *cli.Command, cfg *Config) {
	if cmd.IsSet("keys") {
		cfg.Keys = cmd.Int("keys")
	}
	if cmd.IsSet("key-kind") {
		cfg.KeyKind = cmd.String("key-kind")
	}
	if cmd.IsSet("hasher") {
		cfg.Hasher = cmd.String("hasher")
	}
	if cmd.IsSet("budget") {
		cfg.Budget = cmd.Int64("budget")
	}
	if cmd.IsSet("initial-capacity") {
		cfg.InitialCapacity = cmd.Int("initial-capacity")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
}

func (c Config) validate() error {
	if c.Keys < 0 {
		return fmt.Errorf("keys must not be negative, got %d", c.Keys)
	}
	if _, err := hasherByName(c.Hasher); err != nil {
		return err
	}
	switch c.KeyKind {
	case "u64", "uuid":
	default:
		return fmt.Errorf("unknown key kind %q (want u64 or uuid)", c.KeyKind)
	}
	switch c.Format {
	case "text", "json", "prom", "dump":
	default:
		return fmt.Errorf("unknown format %q (want text, json, prom or dump)", c.Format)
	}
	return nil
}

func hasherByName(name string) (htable.Hasher, error) {
	switch name {
	case "xxhash", "":
		return htable.XXHash32, nil
	case "xxhash64":
		return htable.XXHash64Fold, nil
	case "fnv", "fnv1a":
		return htable.FNV1a32, nil
	}
	return nil, fmt.Errorf("unknown hasher %q (want xxhash, xxhash64 or fnv)", name)
}
