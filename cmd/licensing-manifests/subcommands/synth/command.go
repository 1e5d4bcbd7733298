package synth

import (
	"context"

	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/common"
	ksynth "github.com/bettermarks/licensing-k8s/pkg/configs/synth"
	"github.com/bettermarks/licensing-k8s/pkg/licensing"
	"github.com/bettermarks/licensing-k8s/pkg/manifest"
	"github.com/labstack/gommon/log"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Output string `flag:"output" alias:"o" metavar:"DIR|-" help:"directory where manifests are written. '-' writes one YAML stream to stdout."`
}

// output to stdout.
const Stdout = "-"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Synthesize k8s manifests of Licensing for a segment.",
		Flag{Output: "dist"},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Synthesize k8s manifests of Licensing for a segment.

One file named "<chart>.k8s.yaml" is written per chart.
Identical inputs give identical manifests.
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *ksynth.Config,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		app, err := licensing.Compose(conf, logger)
		if err != nil {
			return err
		}
		files, err := manifest.Files(app)
		if err != nil {
			return err
		}

		out := cl.Flags().Output
		if out == Stdout {
			return manifest.WriteStream(cl.Stdout(), files)
		}
		if err := manifest.WriteDir(out, files); err != nil {
			return err
		}
		for _, f := range files {
			logger.Infof("written: %s (%d objects)", f.Name(), len(f.Objects))
		}
		return nil
	}
}
