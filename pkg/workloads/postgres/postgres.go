// Package postgres assembles the database server used on developer machines.
//
// Other segments use a managed database instead.
package postgres

import (
	"fmt"

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
	ChartId = "postgres"

	DefaultImage = "postgres:14"
	Port         = 5432

	// where the postgres image looks for initialization scripts.
	InitScriptDir = "/docker-entrypoint-initdb.d/"
)

type Props struct {
	// Name of the database. Deployment and Service share this name,
	// and clients reach the database with it as host name.
	Name string

	Image string

	// Secrets with POSTGRES_* environment variables.
	Secrets []string

	// Scripts run on the first start, as file name -> content.
	InitScripts map[string]string
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateLabel("name", props.Name); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if props.Image == "" {
		props.Image = DefaultImage
	}
	if err := workloads.ValidateImage("image", props.Image); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if len(props.Secrets) == 0 {
		return nil, fmt.Errorf("postgres: %w: credentials are required", workloads.ErrMalformed)
	}
	for _, s := range props.Secrets {
		if err := workloads.ValidateName("secret", s); err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
	}

	scripts := map[string]string{}
	for k, v := range props.InitScripts {
		scripts[k] = v
	}
	props.InitScripts = scripts
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
	return c.props.Name
}

func (c *Chart) Component() string {
	return "database"
}

func (c *Chart) InitScriptConfigMapName() string {
	return c.props.Name + "-init-db-script"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.InitScripts(p), c.Deployment(p), c.Service(p)}
}

func (c *Chart) InitScripts(p workloads.Placement) *kubecore.ConfigMap {
	return &kubecore.ConfigMap{
		ObjectMeta: metasource.ToObjectMetaNamed(c, c.InitScriptConfigMapName(), p.Namespace()),
		Data:       c.props.InitScripts,
	}
}

func (c *Chart) Deployment(p workloads.Placement) *kubeapps.Deployment {
	volume := c.InitScriptConfigMapName() + "-volume"
	probe := func() *kubecore.Probe {
		return &kubecore.Probe{
			ProbeHandler: kubecore.ProbeHandler{
				TCPSocket: &kubecore.TCPSocketAction{Port: intstr.FromInt32(Port)},
			},
			InitialDelaySeconds: 10,
		}
	}

	return &kubeapps.Deployment{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Spec: kubeapps.DeploymentSpec{
			Replicas: ptr.To[int32](1),
			Selector: &kubeapimeta.LabelSelector{
				MatchLabels: metasource.SelectorLabels(c),
			},
			Template: kubecore.PodTemplateSpec{
				ObjectMeta: kubeapimeta.ObjectMeta{
					Labels: metasource.PodLabels(c),
				},
				Spec: kubecore.PodSpec{
					Containers: []kubecore.Container{
						{
							Name:            c.props.Name,
							Image:           c.props.Image,
							ImagePullPolicy: kubecore.PullIfNotPresent,
							Ports:           []kubecore.ContainerPort{{ContainerPort: Port}},
							EnvFrom:         workloads.EnvFrom("", c.props.Secrets...),
							ReadinessProbe:  probe(),
							LivenessProbe:   probe(),
							VolumeMounts: []kubecore.VolumeMount{
								{Name: volume, MountPath: InitScriptDir},
							},
						},
					},
					Volumes: []kubecore.Volume{
						{
							Name: volume,
							VolumeSource: kubecore.VolumeSource{
								ConfigMap: &kubecore.ConfigMapVolumeSource{
									LocalObjectReference: kubecore.LocalObjectReference{
										Name: c.InitScriptConfigMapName(),
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

func (c *Chart) Service(p workloads.Placement) *kubecore.Service {
	return &kubecore.Service{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Spec: kubecore.ServiceSpec{
			Type:     kubecore.ServiceTypeClusterIP,
			Ports:    []kubecore.ServicePort{{Port: Port}},
			Selector: metasource.SelectorLabels(c),
		},
	}
}
