package apply_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/apply"
	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/internal/commandline"
	"github.com/bettermarks/licensing-k8s/pkg/configs/synth"
	"github.com/bettermarks/licensing-k8s/pkg/kubeutil"
	"github.com/bettermarks/licensing-k8s/pkg/logging"
	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type fakeApplier struct {
	got []*unstructured.Unstructured
	err error
}

func (f *fakeApplier) Apply(_ context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error) {
	f.got = objs
	if f.err != nil {
		return nil, f.err
	}
	return objs, nil
}

func TestTask(t *testing.T) {
	type When struct {
		flag       apply.Flag
		connectErr error
		applyErr   error
	}
	type Then struct {
		kubeconfig string
		kinds      []string
		err        error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			logger, err := logging.New(io.Discard, "off")
			if err != nil {
				t.Fatal(err)
			}
			conf, err := synth.Seal(&synth.ConfigMarshall{Segment: "ci01", ImageTag: "v2", CreateNamespace: true})
			if err != nil {
				t.Fatal(err)
			}

			fake := &fakeApplier{err: when.applyErr}
			var gotKubeconfig string
			connect := func(kubeconfig string, opts ...kubeutil.ApplierOption) (apply.Applier, error) {
				gotKubeconfig = kubeconfig
				if len(opts) == 0 {
					t.Errorf("applier options are not passed")
				}
				if when.connectErr != nil {
					return nil, when.connectErr
				}
				return fake, nil
			}

			cl := commandline.New("apply", when.flag)

			err = apply.Task(connect)(context.Background(), logger, conf, cl, []any{})
			if then.err != nil {
				if !errors.Is(err, then.err) {
					t.Errorf("(actual, expected) = (%v, %v)", err, then.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if gotKubeconfig != then.kubeconfig {
				t.Errorf("kubeconfig: (actual, expected) = (%s, %s)", gotKubeconfig, then.kubeconfig)
			}
			kinds := []string{}
			for _, o := range fake.got {
				kinds = append(kinds, o.GetKind())
			}
			if diff := cmp.Diff(then.kinds, kinds); diff != "" {
				t.Errorf("applied kinds (-want +got):\n%s", diff)
			}
		}
	}

	allKinds := []string{
		"Namespace",
		"ServiceAccount", "Role", "RoleBinding",
		"ConfigMap",
		"ExternalSecret", "ExternalSecret",
		"Job",
		"Deployment", "Service",
		"CronJob",
		"HelmRepository", "HelmRelease",
	}

	t.Run("it applies every object in order", theory(
		When{flag: apply.Flag{Kubeconfig: "/tmp/kubeconfig", DryRun: true}},
		Then{kubeconfig: "/tmp/kubeconfig", kinds: allKinds},
	))

	connErr := errors.New("no cluster")
	t.Run("it fails when it cannot connect", theory(
		When{connectErr: connErr},
		Then{err: connErr},
	))

	applyErr := errors.New("rejected")
	t.Run("it fails when the cluster rejects", theory(
		When{applyErr: applyErr},
		Then{err: applyErr},
	))
}
