package main

import (
	"github.com/rkjdid/util"
	"github.com/solar3s/gotacx/brake"
	"go.bug.st/serial.v1"
)

var DefaultConfig = Config{
	Brake:   brake.DefaultConfig,
	Ramp:    brake.DefaultRampConfig,
	Watcher: brake.DefaultWatcherConfig,
	Serial:  *brake.DefaultSerialConfig,
}

type Config struct {
	Device  string // if empty, serial ports are probed for a brake
	Verbose bool
	Brake   brake.Config
	Ramp    brake.RampConfig
	Watcher brake.WatcherConfig
	Serial  serial.Mode
}

// loadConfig reads path over DefaultConfig, fields missing
// from the file keep their default value.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	err := util.ReadTomlFile(&cfg, path)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
