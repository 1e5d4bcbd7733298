package synth

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/segment"
)

const (
	// image name on developer machines, built and loaded locally.
	LocalImage = "licensing"

	DefaultImageRepository = "676249682729.dkr.ecr.eu-central-1.amazonaws.com/licensing"
)

// Configuration of one manifest synthesis.
//
// To get `Config` instance, use `Seal` or `TrySeal` on `ConfigMarshall`.
type Config struct {
	segment         segment.Segment
	imageTag        string
	imageRepository string
	namespace       string
	createNamespace bool
	eventExport     *EventExportConfig
	ingress         *IngressControllerConfig
}

func (c *Config) Segment() segment.Segment {
	return c.segment
}

// Tag of the application image. Empty on the local segment when not given.
func (c *Config) ImageTag() string {
	return c.imageTag
}

func (c *Config) ImageRepository() string {
	return c.imageRepository
}

// Image of the application.
//
// On the local segment, it is always LocalImage.
func (c *Config) Image() string {
	if c.segment.IsLocal() {
		return LocalImage
	}
	return fmt.Sprintf("%s:%s", c.imageRepository, c.imageTag)
}

// k8s namespace where Licensing is deployed.
func (c *Config) Namespace() string {
	return c.namespace
}

// Whether the Namespace object is emitted.
func (c *Config) CreateNamespace() bool {
	return c.createNamespace
}

func (c *Config) EventExport() *EventExportConfig {
	return c.eventExport
}

func (c *Config) IngressController() *IngressControllerConfig {
	return c.ingress
}

type EventExportConfig struct {
	eventsPerRun int32
}

// Number of events exported in one run. 0 means the default of the job.
func (e *EventExportConfig) EventsPerRun() int32 {
	return e.eventsPerRun
}

type IngressControllerConfig struct {
	version string
}

// Version of the ingress-nginx chart. Empty means the default.
func (i *IngressControllerConfig) Version() string {
	return i.version
}
