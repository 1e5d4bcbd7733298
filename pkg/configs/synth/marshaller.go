package synth

import (
	"os"

	"gopkg.in/yaml.v3"
)

// load synthesis config from a file, without sealing.
//
// Callers may overwrite fields before sealing it.
func LoadConfigMarshall(filepath string) (*ConfigMarshall, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return UnmarshalMarshall(content)
}

func UnmarshalMarshall(conf []byte) (*ConfigMarshall, error) {
	out := &ConfigMarshall{}
	if err := yaml.Unmarshal(conf, out); err != nil {
		return nil, err
	}
	return out, nil
}

// load synthesis config from a file and seal it.
func LoadConfig(filepath string) (*Config, error) {
	m, err := LoadConfigMarshall(filepath)
	if err != nil {
		return nil, err
	}
	return Seal(m)
}

func Unmarshal(conf []byte) (*Config, error) {
	m, err := UnmarshalMarshall(conf)
	if err != nil {
		return nil, err
	}
	return Seal(m)
}
