package server

import (
	"time"
)

type Config struct {
	Port               int           `yaml:"port"`
	LimitBuckets       int           `yaml:"limitBuckets"`
	LimitPeriod        time.Duration `yaml:"limitPeriod"`
	LimitMaxConcurrent int           `yaml:"limitMaxConcurrent"`
	MaxValues          int           `yaml:"maxValues"`
	MaxBodyBytes       int64         `yaml:"maxBodyBytes"`
	ShutdownTimeout    time.Duration `yaml:"shutdownTimeout"`
}
