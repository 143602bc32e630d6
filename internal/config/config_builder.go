package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error

	args []string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		args:    os.Args[1:],
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	return config, config.validate()
}

func (b *configBuilder) withDotEnv(path string) *configBuilder {
	if err := loadDotEnv(path); err != nil {
		b.err = errors.Join(b.err, err)
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}
