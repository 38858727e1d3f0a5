package main

import (
	"rotator/internal/batch"
	"rotator/internal/config"
	"rotator/internal/history"
)

type Config struct {
	Log     config.Log      `yaml:"log"`
	History *history.Config `yaml:"history"`
	Workers int             `yaml:"workers"`
	Jobs    []batch.Job     `yaml:"jobs"`
}

// demo is used when no config file is given.
func demo() Config {
	return Config{
		Workers: 1,
		Jobs: []batch.Job{
			{Name: "demo", Values: []any{1, 2, 3, 4, 5, 6, 7}, D: 2},
		},
	}
}
