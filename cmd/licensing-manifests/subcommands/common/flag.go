package common

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/synth"
)

// Environment variables giving defaults of common flags.
const (
	EnvSegment  = "SEGMENT"
	EnvImageTag = "IMAGE_TAG"
	EnvConfig   = "LICENSING_SYNTH_CONFIG"
	EnvLogLevel = "LICENSING_LOGLEVEL"
)

type CommonFlags struct {
	Segment  string `flag:"segment" metavar:"loc00|dev00|dev01|ci00|ci01|pro00" help:"segment to synthesize manifests for. (default: $SEGMENT, or loc00)"`
	ImageTag string `flag:"image-tag" help:"tag of the application image. Required except for loc00. (default: $IMAGE_TAG)"`
	Config   string `flag:"config" metavar:"path/to/config.yaml" help:"synthesis config file. Flags and environment variables take precedence over it. (default: $LICENSING_SYNTH_CONFIG)"`
	LogLevel string `flag:"loglevel" metavar:"debug|info|warn|error|off" help:"log level. (default: $LICENSING_LOGLEVEL, or info)"`
}

// Flags returns common flags with defaults from the environment.
func Flags(getenv func(string) string) CommonFlags {
	loglevel := getenv(EnvLogLevel)
	if loglevel == "" {
		loglevel = "info"
	}
	return CommonFlags{
		Segment:  getenv(EnvSegment),
		ImageTag: getenv(EnvImageTag),
		Config:   getenv(EnvConfig),
		LogLevel: loglevel,
	}
}

// SynthConfig loads the config file if any, then overwrites it with flags.
func (cf CommonFlags) SynthConfig() (*synth.Config, error) {
	m := &synth.ConfigMarshall{}
	if cf.Config != "" {
		_m, err := synth.LoadConfigMarshall(cf.Config)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", cf.Config, err)
		}
		m = _m
	}
	if cf.Segment != "" {
		m.Segment = cf.Segment
	}
	if cf.ImageTag != "" {
		m.ImageTag = cf.ImageTag
	}
	return synth.Seal(m)
}
