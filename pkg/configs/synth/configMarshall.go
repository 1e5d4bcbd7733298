package synth

import (
	"errors"
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/google/go-containerregistry/pkg/name"
	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	ErrMissingImageTag = errors.New("image tag is required")
	ErrInvalidConfig   = errors.New("invalid config")
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
// To get an error instead, use `Seal`.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

// seal marshalled config, returning misconfiguration as error.
func Seal(conf *ConfigMarshall) (c *Config, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case error:
			err = e
		default:
			err = fmt.Errorf("%w: %v", ErrInvalidConfig, e)
		}
	}()
	return TrySeal[*Config](conf), nil
}

// Configuration of manifest synthesis.
//
// This type is marshalling value and mutable.
// The CLI overwrites fields with environment variables and flags before sealing.
type ConfigMarshall struct {
	// Segment to synthesize for. default: loc00
	Segment string `yaml:"segment,omitempty"`

	// Tag of the application image. Required except for the local segment.
	ImageTag string `yaml:"imageTag,omitempty"`

	// default: DefaultImageRepository
	ImageRepository string `yaml:"imageRepository,omitempty"`

	// default: "licensing"
	Namespace string `yaml:"namespace,omitempty"`

	CreateNamespace bool `yaml:"createNamespace,omitempty"`

	EventExport       *EventExportConfigMarshall       `yaml:"eventExport,omitempty"`
	IngressController *IngressControllerConfigMarshall `yaml:"ingressController,omitempty"`
}

var _ Marshalled[*Config] = &ConfigMarshall{}

func (c *ConfigMarshall) trySeal(path string) *Config {
	if c == nil {
		c = &ConfigMarshall{}
	}

	seg := segment.LOC00
	if c.Segment != "" {
		s, err := segment.Parse(c.Segment)
		if err != nil {
			panic(fmt.Errorf("%s.segment: %w", path, err))
		}
		seg = s
	}

	if !seg.IsLocal() && c.ImageTag == "" {
		panic(fmt.Errorf("%s.imageTag: %w for segment %s", path, ErrMissingImageTag, seg))
	}

	repo := withDefault(c.ImageRepository, DefaultImageRepository)
	if c.ImageTag != "" {
		if _, err := name.NewTag(repo + ":" + c.ImageTag); err != nil {
			panic(fmt.Errorf("%s.imageTag: %w: %w", path, ErrInvalidConfig, err))
		}
	} else if _, err := name.NewRepository(repo); err != nil {
		panic(fmt.Errorf("%s.imageRepository: %w: %w", path, ErrInvalidConfig, err))
	}

	ns := withDefault(c.Namespace, segment.Namespace)
	if errs := validation.IsDNS1123Label(ns); len(errs) != 0 {
		panic(fmt.Errorf("%s.namespace: %w: %q: %v", path, ErrInvalidConfig, ns, errs))
	}

	return &Config{
		segment:         seg,
		imageTag:        c.ImageTag,
		imageRepository: repo,
		namespace:       ns,
		createNamespace: c.CreateNamespace,
		eventExport:     c.EventExport.trySeal(path + ".eventExport"),
		ingress:         c.IngressController.trySeal(path + ".ingressController"),
	}
}

type EventExportConfigMarshall struct {
	// default: 0 (the job decides)
	EventsPerRun int32 `yaml:"eventsPerRun,omitempty"`
}

var _ Marshalled[*EventExportConfig] = &EventExportConfigMarshall{}

func (e *EventExportConfigMarshall) trySeal(path string) *EventExportConfig {
	if e == nil {
		return &EventExportConfig{}
	}
	if e.EventsPerRun < 0 {
		panic(fmt.Errorf("%s.eventsPerRun: %w: should not be negative: %d", path, ErrInvalidConfig, e.EventsPerRun))
	}
	return &EventExportConfig{eventsPerRun: e.EventsPerRun}
}

type IngressControllerConfigMarshall struct {
	// Version of the ingress-nginx chart.
	Version string `yaml:"version,omitempty"`
}

var _ Marshalled[*IngressControllerConfig] = &IngressControllerConfigMarshall{}

func (i *IngressControllerConfigMarshall) trySeal(string) *IngressControllerConfig {
	if i == nil {
		return &IngressControllerConfig{}
	}
	return &IngressControllerConfig{version: i.Version}
}

func withDefault(v string, d string) string {
	if v == "" {
		return d
	}
	return v
}
