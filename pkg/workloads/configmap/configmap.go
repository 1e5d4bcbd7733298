// Package configmap assembles the ConfigMap with runtime configuration of Licensing.
package configmap

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/application"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

const (
	ChartId = "licensing-config"

	// name of the ConfigMap read by Licensing workloads.
	DefaultName = "licensing-config"
)

type Props struct {
	// Empty means DefaultName.
	Name string

	Config application.Config
}

type Chart struct {
	name string
	data map[string]string
}

var _ workloads.Chart = &Chart{}

// New validates the configuration and renders it into ConfigMap data.
func New(props Props) (*Chart, error) {
	if props.Name == "" {
		props.Name = DefaultName
	}
	if err := workloads.ValidateName("name", props.Name); err != nil {
		return nil, fmt.Errorf("configmap: %w", err)
	}
	if err := props.Config.Validate(); err != nil {
		return nil, fmt.Errorf("configmap: %w: %w", workloads.ErrMalformed, err)
	}
	data, err := props.Config.Data()
	if err != nil {
		return nil, fmt.Errorf("configmap: %w", err)
	}
	return &Chart{name: props.Name, data: data}, nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return "licensing"
}

func (c *Chart) Instance() string {
	return c.name
}

func (c *Chart) Component() string {
	return "config"
}

// ConfigMapName is the name workloads refer the ConfigMap by.
func (c *Chart) ConfigMapName() string {
	return c.name
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.ConfigMap(p)}
}

func (c *Chart) ConfigMap(p workloads.Placement) *kubecore.ConfigMap {
	data := make(map[string]string, len(c.data))
	for k, v := range c.data {
		data[k] = v
	}
	return &kubecore.ConfigMap{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Data:       data,
	}
}
