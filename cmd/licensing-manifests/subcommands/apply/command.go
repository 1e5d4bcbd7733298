package apply

import (
	"context"

	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/common"
	"github.com/bettermarks/licensing-k8s/pkg/configs/synth"
	"github.com/bettermarks/licensing-k8s/pkg/kubeutil"
	"github.com/bettermarks/licensing-k8s/pkg/licensing"
	"github.com/bettermarks/licensing-k8s/pkg/manifest"
	"github.com/labstack/gommon/log"
	"github.com/youta-t/flarc"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type Flag struct {
	Kubeconfig string `flag:"kubeconfig" metavar:"path/to/kubeconfig" help:"kubeconfig file. (default: $KUBECONFIG, or ~/.kube/config, or in-cluster config)"`
	DryRun     bool   `flag:"dry-run" help:"validate objects in the cluster without persisting them."`
}

type Applier interface {
	Apply(context.Context, []*unstructured.Unstructured) ([]*unstructured.Unstructured, error)
}

// Connector returns Applier for the cluster.
type Connector func(kubeconfig string, opts ...kubeutil.ApplierOption) (Applier, error)

// Connect to the cluster found from kubeconfig.
func Connect(kubeconfig string, opts ...kubeutil.ApplierOption) (Applier, error) {
	conf, err := kubeutil.RESTConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	a, err := kubeutil.Connect(conf, opts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Apply k8s manifests of Licensing to a cluster.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task(Connect)),
		flarc.WithDescription(`
Apply k8s manifests of Licensing for a segment to a cluster, with server-side apply.

Objects are applied in order of charts. It stops at the first failure.
`),
	)
}

func Task(connect Connector) common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *synth.Config,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		app, err := licensing.Compose(conf, logger)
		if err != nil {
			return err
		}
		objs, err := manifest.Objects(app)
		if err != nil {
			return err
		}

		applier, err := connect(
			cl.Flags().Kubeconfig,
			kubeutil.DryRun(cl.Flags().DryRun),
			kubeutil.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		applied, err := applier.Apply(ctx, objs)
		logger.Infof("%d of %d objects applied", len(applied), len(objs))
		return err
	}
}
