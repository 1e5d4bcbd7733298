// Package namespace assembles the Namespace Licensing runs in.
//
// Clusters usually have the namespace already, so this is emitted only on request.
package namespace

import (
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/metasource"
	kubecore "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

const ChartId = "namespace"

type Chart struct{}

var _ workloads.Chart = Chart{}

func New() Chart {
	return Chart{}
}

func (Chart) Id() string {
	return ChartId
}

func (Chart) Name() string {
	return "licensing"
}

func (Chart) Instance() string {
	return "licensing-namespace"
}

func (Chart) Component() string {
	return "namespace"
}

func (c Chart) Build(p workloads.Placement) []runtime.Object {
	return []runtime.Object{c.Namespace(p)}
}

// Namespace named after the placement.
func (c Chart) Namespace(p workloads.Placement) *kubecore.Namespace {
	return &kubecore.Namespace{
		ObjectMeta: metasource.ToObjectMetaNamed(c, p.Namespace(), ""),
	}
}
