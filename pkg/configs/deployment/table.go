package deployment

import (
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"k8s.io/apimachinery/pkg/api/resource"
)

// size builds Sizing whose memory limit equals the memory request.
func size(cpu string, memory string) Sizing {
	c := resource.MustParse(cpu)
	m := resource.MustParse(memory)
	l := m.DeepCopy()
	return Sizing{RequestCPU: &c, RequestMemory: &m, LimitMemory: &l}
}

var builtin = Table{
	segment.LOC00: {
		APIReplicas: 1,
	},
	segment.DEV00: {
		Migration:    size("25m", "64Mi"),
		LoadFixtures: size("25m", "64Mi"),
		API:          size("100m", "128Mi"),
		EventExport:  size("100m", "128Mi"),
		APIReplicas:  1,
	},
	segment.DEV01: {
		Migration:    size("25m", "64Mi"),
		LoadFixtures: size("25m", "64Mi"),
		API:          size("100m", "128Mi"),
		EventExport:  size("100m", "128Mi"),
		APIReplicas:  1,
	},
	segment.CI00: {
		Migration:    size("50m", "128Mi"),
		LoadFixtures: size("50m", "128Mi"),
		API:          size("250m", "256Mi"),
		EventExport:  size("100m", "128Mi"),
		APIReplicas:  2,
	},
	segment.CI01: {
		Migration:    size("50m", "128Mi"),
		LoadFixtures: size("50m", "128Mi"),
		API:          size("250m", "256Mi"),
		EventExport:  size("100m", "128Mi"),
		APIReplicas:  2,
	},
	segment.PRO00: {
		Migration:    size("50m", "128Mi"),
		LoadFixtures: size("250m", "128Mi"),
		API:          size("250m", "512Mi"),
		EventExport:  size("300m", "256Mi"),
		APIReplicas:  4,
	},
}
