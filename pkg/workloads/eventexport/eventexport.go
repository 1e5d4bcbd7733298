// Package eventexport assembles the CronJob exporting licensing events
// to the data warehouse.
package eventexport

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/application"
	"github.com/bettermarks/licensing-k8s/pkg/configs/deployment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubebatch "k8s.io/api/batch/v1"
	kubecore "k8s.io/api/core/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"
)

const (
	ChartId = "event-export"

	Schedule          = "*/20 * * * *"
	ConcurrencyPolicy = kubebatch.ForbidConcurrent

	BackoffLimit            = 1
	TTLSecondsAfterFinished = 600

	Script = "src/services/licensing/scripts/export_events.py"

	// Events exported in a run.
	DefaultEventsPerRun int32 = 12000

	// Deprecated: batch size of the previous generation of this job.
	// Use DefaultEventsPerRun.
	LegacyEventsPerRun int32 = 3000
)

type Props struct {
	// Base name of the application. The CronJob is named "<Name>-event-export".
	Name string

	Image     string
	ConfigMap string

	// Secrets with credentials of the export targets.
	Secrets []string

	Sizing deployment.Sizing

	// Log format of the export script.
	LogFormat application.LogFormat

	// Zero means DefaultEventsPerRun.
	EventsPerRun int32
}

type Chart struct {
	props Props
}

var _ workloads.Chart = &Chart{}

func New(props Props) (*Chart, error) {
	if err := workloads.ValidateLabel("name", props.Name); err != nil {
		return nil, fmt.Errorf("event export: %w", err)
	}
	if err := workloads.ValidateImage("image", props.Image); err != nil {
		return nil, fmt.Errorf("event export: %w", err)
	}
	if err := workloads.ValidateName("configmap", props.ConfigMap); err != nil {
		return nil, fmt.Errorf("event export: %w", err)
	}
	if len(props.Secrets) == 0 {
		return nil, fmt.Errorf("event export: %w: export credentials are required", workloads.ErrMalformed)
	}
	for _, s := range props.Secrets {
		if err := workloads.ValidateName("secret", s); err != nil {
			return nil, fmt.Errorf("event export: %w", err)
		}
	}
	switch props.LogFormat {
	case application.FormatConsole, application.FormatJSON:
	default:
		return nil, fmt.Errorf(
			"event export: %w: log format should be %s or %s: %q",
			workloads.ErrMalformed, application.FormatConsole, application.FormatJSON, props.LogFormat,
		)
	}
	if props.EventsPerRun < 0 {
		return nil, fmt.Errorf("event export: %w: events per run should be positive: %d", workloads.ErrMalformed, props.EventsPerRun)
	}
	if props.EventsPerRun == 0 {
		props.EventsPerRun = DefaultEventsPerRun
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
	return c.props.Name + "-event-export"
}

func (c *Chart) Component() string {
	return "event-export"
}

// Command of the export container.
func (c *Chart) Command() []string {
	return []string{
		"python",
		Script,
		fmt.Sprintf("--events-per-run=%d", c.props.EventsPerRun),
		fmt.Sprintf("--log-format=%s", c.props.LogFormat),
	}
}

func (c *Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.CronJob(p)}
}

func (c *Chart) CronJob(p workloads.Placement) *kubebatch.CronJob {
	meta := metasource.ToObjectMeta(c, p.Namespace())

	return &kubebatch.CronJob{
		ObjectMeta: meta,
		Spec: kubebatch.CronJobSpec{
			Schedule:          Schedule,
			ConcurrencyPolicy: ConcurrencyPolicy,
			Suspend:           ptr.To(false),
			JobTemplate: kubebatch.JobTemplateSpec{
				ObjectMeta: *meta.DeepCopy(),
				Spec: kubebatch.JobSpec{
					Suspend:                 ptr.To(false),
					BackoffLimit:            ptr.To[int32](BackoffLimit),
					TTLSecondsAfterFinished: ptr.To[int32](TTLSecondsAfterFinished),
					Template: kubecore.PodTemplateSpec{
						ObjectMeta: kubeapimeta.ObjectMeta{
							Labels: metasource.PodLabels(c),
						},
						Spec: kubecore.PodSpec{
							NodeSelector:       p.NodeSelector(),
							ServiceAccountName: p.ServiceAccount(),
							RestartPolicy:      kubecore.RestartPolicyNever,
							Containers: []kubecore.Container{
								{
									Name:            c.Instance(),
									Image:           c.props.Image,
									ImagePullPolicy: kubecore.PullIfNotPresent,
									Resources:       c.props.Sizing.Requirements(),
									EnvFrom:         workloads.EnvFrom(c.props.ConfigMap, c.props.Secrets...),
									Command:         c.Command(),
								},
							},
						},
					},
				},
			},
		},
	}
}
