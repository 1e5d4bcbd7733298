// Package licensing composes every resource of the Licensing backend for one segment.
package licensing

import (
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/application"
	"github.com/bettermarks/licensing-k8s/pkg/configs/deployment"
	"github.com/bettermarks/licensing-k8s/pkg/configs/synth"
	"github.com/bettermarks/licensing-k8s/pkg/secrets"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/bettermarks/licensing-k8s/pkg/workloads"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/api"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/configmap"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/eventexport"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/ingress"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/ingresscontroller"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/migration"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/namespace"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/postgres"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/secret"
	"github.com/bettermarks/licensing-k8s/pkg/workloads/serviceaccount"
	"github.com/labstack/gommon/log"
)

const (
	// base name of Licensing workloads.
	Name = "licensing"

	// identity of Licensing workloads.
	ServiceAccount = "licensing"

	// TLS certificate of the local ingress controller.
	LocalTLSSecret = "loc00-tls-secret"

	// origin of the web apps on developer machines.
	LocalAppsOrigin = "https://apps.bettermarks.loc"

	LocalIngressControllerReplicas = 1
)

// node pool of application workloads on non-local segments.
func ApplicationNodes() map[string]string {
	return map[string]string{"nodetype": "application"}
}

// Tables of per-segment configuration.
type Tables struct {
	Application application.Table
	Deployment  deployment.Table
}

// Tables shipped with this module.
func BuiltinTables() Tables {
	return Tables{
		Application: application.Builtin(),
		Deployment:  deployment.Builtin(),
	}
}

// App is the composed resources of Licensing.
type App struct {
	segment   segment.Segment
	image     string
	placement workloads.Placement
	charts    []workloads.Chart
}

func (a *App) Segment() segment.Segment {
	return a.segment
}

// Image of the application workloads.
func (a *App) Image() string {
	return a.image
}

func (a *App) Placement() workloads.Placement {
	return a.placement
}

// Charts in order of application: what is depended on comes first.
func (a *App) Charts() []workloads.Chart {
	return append([]workloads.Chart{}, a.charts...)
}

// Compose builds charts of Licensing with the builtin tables.
func Compose(conf *synth.Config, logger *log.Logger) (*App, error) {
	return ComposeWith(conf, BuiltinTables(), logger)
}

// ComposeWith builds charts of Licensing for the segment of conf.
//
// It fails when tables lack a valid entry for any segment, or when a workload
// would read a Secret which is not provided for the segment.
func ComposeWith(conf *synth.Config, tables Tables, logger *log.Logger) (*App, error) {
	seg := conf.Segment()

	if err := tables.Application.Validate(); err != nil {
		return nil, err
	}
	if err := tables.Deployment.Validate(); err != nil {
		return nil, err
	}

	appConf, err := tables.Application.Lookup(seg)
	if err != nil {
		return nil, err
	}
	sizing, err := tables.Deployment.Lookup(seg)
	if err != nil {
		return nil, err
	}

	secretSet, err := secrets.Resolve(seg)
	if err != nil {
		return nil, err
	}

	var nodeSelector map[string]string
	if !seg.IsLocal() {
		nodeSelector = ApplicationNodes()
	}
	placement, err := workloads.NewPlacement(conf.Namespace(), ServiceAccount, nodeSelector)
	if err != nil {
		return nil, err
	}

	image := conf.Image()
	logger.Infof("composing segment %s (stage %s) with image %s", seg, seg.Stage(), image)

	c := &composer{logger: logger, secrets: secretSet}

	if conf.CreateNamespace() {
		c.add(namespace.New(), nil)
	}

	var pullSecrets []string
	if !seg.IsLocal() {
		pullSecrets = []string{serviceaccount.RegistryCredentials}
	}
	c.add(serviceaccount.New(serviceaccount.Props{Name: ServiceAccount, ImagePullSecrets: pullSecrets}))

	config, err := configmap.New(configmap.Props{Config: appConf})
	c.add(config, err)
	if c.err != nil {
		return nil, c.err
	}

	c.add(secret.New(secret.Props{Secrets: secretSet}))

	if seg.IsLocal() {
		c.add(postgres.New(postgres.Props{
			Name:    secrets.LocalDatabaseHost,
			Secrets: c.require(secrets.Database),
		}))
	}

	c.add(migration.New(migration.Props{
		Name:      Name,
		Image:     image,
		ConfigMap: config.ConfigMapName(),
		Secrets:   c.require(secrets.Migration),
		Sizing:    sizing.Migration,
	}))

	licensingAPI, err := api.New(api.Props{
		Name:      Name,
		Image:     image,
		ConfigMap: config.ConfigMapName(),
		Secrets:   c.require(secrets.API),
		Sizing:    sizing.API,
		Replicas:  sizing.APIReplicas,
	})
	c.add(licensingAPI, err)

	logFormat := application.FormatJSON
	if seg.IsLocal() {
		logFormat = application.FormatConsole
	}
	c.add(eventexport.New(eventexport.Props{
		Name:         Name,
		Image:        image,
		ConfigMap:    config.ConfigMapName(),
		Secrets:      c.require(secrets.EventExport),
		Sizing:       sizing.EventExport,
		LogFormat:    logFormat,
		EventsPerRun: conf.EventExport().EventsPerRun(),
	}))

	controller := ingresscontroller.Props{Version: conf.IngressController().Version()}
	if seg.IsLocal() {
		controller.Replicas = LocalIngressControllerReplicas
		controller.TLSSecret = LocalTLSSecret
	}
	c.add(ingresscontroller.New(controller))

	if seg.IsLocal() && c.err == nil {
		c.add(ingress.New(ingress.Props{
			Name:        Name,
			ClassName:   ingresscontroller.IngressClass,
			Service:     licensingAPI.Instance(),
			ServicePort: api.ServicePort,
			Annotations: map[string]string{
				"nginx.ingress.kubernetes.io/enable-cors":       "true",
				"nginx.ingress.kubernetes.io/cors-allow-origin": LocalAppsOrigin,
			},
		}))
	}

	if c.err != nil {
		return nil, c.err
	}

	return &App{
		segment:   seg,
		image:     image,
		placement: placement,
		charts:    c.charts,
	}, nil
}

// composer collects charts, keeping the first error.
type composer struct {
	logger  *log.Logger
	secrets secrets.Set
	charts  []workloads.Chart
	err     error
}

func (c *composer) add(chart workloads.Chart, err error) {
	if c.err != nil {
		return
	}
	if err != nil {
		c.err = err
		return
	}
	c.logger.Debugf("chart %s: %s (%s)", chart.Id(), chart.Instance(), chart.Component())
	c.charts = append(c.charts, chart)
}

// require returns Secrets the workload reads, checking they are provided.
func (c *composer) require(w secrets.Workload) []string {
	names := secrets.RequiredBy(w)
	if err := c.secrets.Require(names...); err != nil && c.err == nil {
		c.err = fmt.Errorf("%s: %w", w, err)
	}
	return names
}
