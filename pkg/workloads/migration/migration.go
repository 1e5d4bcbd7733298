// Package migration assembles the Job upgrading the database schema of Licensing.
package migration

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/deployment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubebatch "k8s.io/api/batch/v1"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
)

const (
	ChartId = "migration"

	// image of the init container waiting for the database.
	WaitImage = "postgres:14"

	BackoffLimit            = 1
	TTLSecondsAfterFinished = 60
)

var (
	// Command of the init container. It blocks until the database accepts connections.
	WaitCommand = []string{"sh", "-c", "until pg_isready --host ${DB_HOST}; do sleep 1; done"}

	// Command of the main container.
	MigrateCommand = []string{"bash", "-c"}
	MigrateArgs    = []string{"alembic upgrade head"}
)

type Props struct {
	// Base name of the application. The Job is named "<Name>-migration".
	Name string

	Image     string
	ConfigMap string

	// Secrets with database credentials.
	Secrets []string

	Sizing deployment.Sizing
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateLabel("name", props.Name); err != nil {
		return nil, fmt.Errorf("migration: %w", err)
	}
	if err := workloads.ValidateImage("image", props.Image); err != nil {
		return nil, fmt.Errorf("migration: %w", err)
	}
	if err := workloads.ValidateName("configmap", props.ConfigMap); err != nil {
		return nil, fmt.Errorf("migration: %w", err)
	}
	if len(props.Secrets) == 0 {
		return nil, fmt.Errorf("migration: %w: database credentials are required", workloads.ErrMalformed)
	}
	for _, s := range props.Secrets {
		if err := workloads.ValidateName("secret", s); err != nil {
			return nil, fmt.Errorf("migration: %w", err)
		}
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
	return c.props.Name + "-migration"
}

func (c *Chart) Component() string {
	return "migration"
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.Job(p)}
}

func (c *Chart) Job(p workloads.Placement) *kubebatch.Job {
	env := workloads.EnvFrom(c.props.ConfigMap, c.props.Secrets...)

	return &kubebatch.Job{
		ObjectMeta: metasource.ToObjectMeta(c, p.Namespace()),
		Spec: kubebatch.JobSpec{
			BackoffLimit:            ptr.To[int32](BackoffLimit),
			TTLSecondsAfterFinished: ptr.To[int32](TTLSecondsAfterFinished),
			Template: kubecore.PodTemplateSpec{
				ObjectMeta: kubeapimeta.ObjectMeta{
					Labels: metasource.PodLabels(c),
				},
				Spec: kubecore.PodSpec{
					ServiceAccountName: p.ServiceAccount(),
					NodeSelector:       p.NodeSelector(),
					RestartPolicy:      kubecore.RestartPolicyNever,
					InitContainers: []kubecore.Container{
						{
							Name:            "wait-for-database-migration",
							Image:           WaitImage,
							ImagePullPolicy: kubecore.PullIfNotPresent,
							Command:         append([]string{}, WaitCommand...),
							EnvFrom:         env,
							Resources: kubecore.ResourceRequirements{
								Requests: kubecore.ResourceList{
									kubecore.ResourceCPU:    resource.MustParse("100m"),
									kubecore.ResourceMemory: resource.MustParse("64Mi"),
								},
								Limits: kubecore.ResourceList{
									kubecore.ResourceMemory: resource.MustParse("64Mi"),
								},
							},
						},
					},
					Containers: []kubecore.Container{
						{
							Name:            c.Instance(),
							Image:           c.props.Image,
							ImagePullPolicy: kubecore.PullIfNotPresent,
							Command:         append([]string{}, MigrateCommand...),
							Args:            append([]string{}, MigrateArgs...),
							EnvFrom:         env,
							Resources:       c.props.Sizing.Requirements(),
						},
					},
				},
			},
		},
	}
}
