package kubeutil

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"
	"k8s.io/apimachinery/pkg/api/meta"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/utils/ptr"
)

// field manager of server-side apply.
const FieldManager = "licensing-manifests"

// Applier puts objects into a cluster with server-side apply.
type Applier struct {
	client dynamic.Interface
	mapper meta.RESTMapper
	logger *log.Logger
	dryRun bool
}

type ApplierOption func(*Applier)

// Objects are validated and not persisted.
func DryRun(dryRun bool) ApplierOption {
	return func(a *Applier) {
		a.dryRun = dryRun
	}
}

func WithLogger(l *log.Logger) ApplierOption {
	return func(a *Applier) {
		a.logger = l
	}
}

func NewApplier(client dynamic.Interface, mapper meta.RESTMapper, opts ...ApplierOption) *Applier {
	a := &Applier{client: client, mapper: mapper, logger: log.New(FieldManager)}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Connect returns Applier for the cluster.
//
// Resources of kinds are discovered from the cluster lazily.
func Connect(conf *rest.Config, opts ...ApplierOption) (*Applier, error) {
	client, err := dynamic.NewForConfig(conf)
	if err != nil {
		return nil, err
	}
	dc, err := discovery.NewDiscoveryClientForConfig(conf)
	if err != nil {
		return nil, err
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(dc))
	return NewApplier(client, mapper, opts...), nil
}

func (a *Applier) PatchOptions() kubeapimeta.PatchOptions {
	opts := kubeapimeta.PatchOptions{
		FieldManager: FieldManager,
		Force:        ptr.To(true),
	}
	if a.dryRun {
		opts.DryRun = []string{kubeapimeta.DryRunAll}
	}
	return opts
}

// Apply objects in order, and returns what the cluster responded.
//
// It stops at the first failure.
func (a *Applier) Apply(ctx context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error) {
	applied := make([]*unstructured.Unstructured, 0, len(objs))
	for _, o := range objs {
		ret, err := a.apply(ctx, o)
		if err != nil {
			return applied, fmt.Errorf("%s %s/%s: %w", o.GetKind(), o.GetNamespace(), o.GetName(), err)
		}
		applied = append(applied, ret)
	}
	return applied, nil
}

func (a *Applier) apply(ctx context.Context, o *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	gvk := o.GroupVersionKind()
	mapping, err := a.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, err
	}

	var ri dynamic.ResourceInterface
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		ri = a.client.Resource(mapping.Resource).Namespace(o.GetNamespace())
	} else {
		ri = a.client.Resource(mapping.Resource)
	}

	body, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}

	ret, err := ri.Patch(ctx, o.GetName(), types.ApplyPatchType, body, a.PatchOptions())
	if err != nil {
		return nil, err
	}
	if a.dryRun {
		a.logger.Infof("%s %s/%s applied (dry run)", gvk.Kind, o.GetNamespace(), o.GetName())
	} else {
		a.logger.Infof("%s %s/%s applied", gvk.Kind, o.GetNamespace(), o.GetName())
	}
	return ret, nil
}
