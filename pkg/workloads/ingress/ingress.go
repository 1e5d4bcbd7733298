// Package ingress assembles the Ingress exposing the API on developer machines.
package ingress

import (
	"fmt"
	"maps"

	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubenet "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/utils/ptr"
)

const (
	ChartId = "local-ingress"

	DefaultHost = "licensing.bettermarks.loc"
)

type Props struct {
	// Base name of the application. The Ingress is named "<Name>-ingress".
	Name string

	Host      string
	ClassName string

	// Service and its port receiving requests.
	Service     string
	ServicePort int32

	Annotations map[string]string
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateLabel("name", props.Name); err != nil {
		return nil, fmt.Errorf("ingress: %w", err)
	}
	if props.Host == "" {
		props.Host = DefaultHost
	}
	if errs := validation.IsDNS1123Subdomain(props.Host); len(errs) != 0 {
		return nil, fmt.Errorf("ingress: %w: host %q: %v", workloads.ErrMalformed, props.Host, errs)
	}
	if err := workloads.ValidateName("ingress class", props.ClassName); err != nil {
		return nil, fmt.Errorf("ingress: %w", err)
	}
	if err := workloads.ValidateLabel("service", props.Service); err != nil {
		return nil, fmt.Errorf("ingress: %w", err)
	}
	if errs := validation.IsValidPortNum(int(props.ServicePort)); len(errs) != 0 {
		return nil, fmt.Errorf("ingress: %w: service port %d: %v", workloads.ErrMalformed, props.ServicePort, errs)
	}
	props.Annotations = maps.Clone(props.Annotations)
	return &Chart{props: props}, nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return c.props.Name
}

func (c *Chart) Instance() string {
	return c.props.Name + "-ingress"
}

func (c *Chart) Component() string {
	return "ingress"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.Ingress(p)}
}

func (c *Chart) Ingress(p workloads.Placement) *kubenet.Ingress {
	meta := metasource.ToObjectMeta(c, p.Namespace())
	if len(c.props.Annotations) != 0 {
		meta.Annotations = maps.Clone(c.props.Annotations)
	}

	return &kubenet.Ingress{
		ObjectMeta: meta,
		Spec: kubenet.IngressSpec{
			IngressClassName: ptr.To(c.props.ClassName),
			Rules: []kubenet.IngressRule{
				{
					Host: c.props.Host,
					IngressRuleValue: kubenet.IngressRuleValue{
						HTTP: &kubenet.HTTPIngressRuleValue{
							Paths: []kubenet.HTTPIngressPath{
								{
									Path:     "/",
									PathType: ptr.To(kubenet.PathTypePrefix),
									Backend: kubenet.IngressBackend{
										Service: &kubenet.IngressServiceBackend{
											Name: c.props.Service,
											Port: kubenet.ServiceBackendPort{
												Number: c.props.ServicePort,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
