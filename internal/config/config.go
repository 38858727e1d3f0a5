// Package config loads strict YAML configuration files.
package config

import (
	"context"
	"fmt"
	"os"
	"rotator/internal/ctxlog"

	"github.com/goccy/go-yaml"
)

type Log struct {
	Dir string `yaml:"dir"`
}

// Load decodes filename into a T. Unknown fields are an error.
func Load[T any](ctx context.Context, filename string) (T, error) {
	var config T

	file, err := os.Open(filename)
	if err != nil {
		return config, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	err = dec.Decode(&config)
	if err != nil {
		return config, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
