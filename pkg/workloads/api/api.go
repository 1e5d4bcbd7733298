// Package api assembles the Deployment and Service of the Licensing API server.
package api

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/deployment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

const (
	ChartId = "licensing"

	ContainerPort = 8000
	ServicePort   = 80

	ReadinessPath = "/status"
	LivenessPath  = "/livez"
)

type Props struct {
	// Base name of the application. Resources are named "<Name>-api".
	Name string

	Image string

	// ConfigMap with application configuration.
	ConfigMap string

	// Secrets which the server reads its environment from.
	Secrets []string

	Sizing   deployment.Sizing
	Replicas int32
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateLabel("name", props.Name); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if err := workloads.ValidateImage("image", props.Image); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if err := workloads.ValidateName("configmap", props.ConfigMap); err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	for _, s := range props.Secrets {
		if err := workloads.ValidateName("secret", s); err != nil {
			return nil, fmt.Errorf("api: %w", err)
		}
	}
	if props.Replicas < 0 {
		return nil, fmt.Errorf("api: %w: replicas should not be negative: %d", workloads.ErrMalformed, props.Replicas)
	}

	props.Secrets = append([]string{}, props.Secrets...)
	return &Chart{props: props}, nil
}

func (c *Chart) Id() string {
	return ChartId
}

func (c *Chart) Name() string {
	return c.props.Name
}

func (c *Chart) Instance() string {
	return c.props.Name + "-api"
}

func (c *Chart) Component() string {
	return "api"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.Deployment(p), c.Service(p)}
}

func (c *Chart) Deployment(p workloads.Placement) *kubeapps.Deployment {
	name := c.Instance()
	probe := func(path string) *kubecore.Probe {
		return &kubecore.Probe{
			ProbeHandler: kubecore.ProbeHandler{
				HTTPGet: &kubecore.HTTPGetAction{
					Path: path,
					Port: intstr.FromInt32(ContainerPort),
				},
			},
			InitialDelaySeconds: 10,
			TimeoutSeconds:      3,
		}
	}

	return &kubeapps.Deployment{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Spec: kubeapps.DeploymentSpec{
			Replicas: ptr.To(c.props.Replicas),
			Selector: &kubeapimeta.LabelSelector{
				MatchLabels: metasource.SelectorLabels(c),
			},
			Strategy: kubeapps.DeploymentStrategy{
				Type: kubeapps.RollingUpdateDeploymentStrategyType,
				RollingUpdate: &kubeapps.RollingUpdateDeployment{
					MaxSurge:       ptr.To(intstr.FromInt32(1)),
					MaxUnavailable: ptr.To(intstr.FromInt32(0)),
				},
			},
			Template: kubecore.PodTemplateSpec{
				ObjectMeta: kubeapimeta.ObjectMeta{
					Labels: metasource.PodLabels(c),
				},
				Spec: kubecore.PodSpec{
					ServiceAccountName:        p.ServiceAccount(),
					NodeSelector:              p.NodeSelector(),
					Tolerations:               p.Tolerations(),
					TopologySpreadConstraints: spread(p, metasource.SelectorLabels(c)),
					Containers: []kubecore.Container{
						{
							Name:            name,
							Image:           c.props.Image,
							ImagePullPolicy: kubecore.PullIfNotPresent,
							Ports: []kubecore.ContainerPort{
								{ContainerPort: ContainerPort},
							},
							Resources:      c.props.Sizing.Requirements(),
							EnvFrom:        workloads.EnvFrom(c.props.ConfigMap, c.props.Secrets...),
							ReadinessProbe: probe(ReadinessPath),
							LivenessProbe:  probe(LivenessPath),
						},
					},
				},
			},
		},
	}
}

func (c *Chart) Service(p workloads.Placement) *kubecore.Service {
	return &kubecore.Service{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Spec: kubecore.ServiceSpec{
			Type: kubecore.ServiceTypeClusterIP,
			Ports: []kubecore.ServicePort{
				{
					Port:       ServicePort,
					TargetPort: intstr.FromInt32(ContainerPort),
				},
			},
			Selector: metasource.SelectorLabels(c),
		},
	}
}

// spread API pods across zones and hosts, when they are pinned to nodes.
func spread(p workloads.Placement, selector map[string]string) []kubecore.TopologySpreadConstraint {
	if !p.Pinned() {
		return nil
	}

	constraint := func(topologyKey string) kubecore.TopologySpreadConstraint {
		return kubecore.TopologySpreadConstraint{
			MaxSkew:            1,
			TopologyKey:        topologyKey,
			WhenUnsatisfiable:  kubecore.ScheduleAnyway,
			LabelSelector:      &kubeapimeta.LabelSelector{MatchLabels: selector},
			MatchLabelKeys:     []string{"pod-template-hash"},
			NodeAffinityPolicy: ptr.To(kubecore.NodeInclusionPolicyHonor),
			NodeTaintsPolicy:   ptr.To(kubecore.NodeInclusionPolicyHonor),
		}
	}
	return []kubecore.TopologySpreadConstraint{
		constraint(kubecore.LabelTopologyZone),
		constraint(kubecore.LabelHostname),
	}
}
