package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/apply"
	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/common"
	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/segments"
	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/synth"
	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/version"
	"github.com/youta-t/flarc"
)

// signals which stop the running subcommand.
var interrupts = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	logger := log.Default()
	logger.SetPrefix("[licensing-manifests] ")

	ctx, cancel := signal.NotifyContext(context.Background(), interrupts...)
	defer cancel()

	synthCmd := must(synth.New())(logger)
	applyCmd := must(apply.New())(logger)
	segmentsCmd := must(segments.New())(logger)
	versionCmd := must(version.New())(logger)

	cmd := must(
		flarc.NewCommandGroup(
			"Synthesize and apply k8s manifests of the Licensing backend.",
			common.Flags(os.Getenv),
			flarc.WithSubcommand("synth", synthCmd),
			flarc.WithSubcommand("apply", applyCmd),
			flarc.WithSubcommand("segments", segmentsCmd),
			flarc.WithSubcommand("version", versionCmd),
		),
	)(logger)

	code := flarc.Run(ctx, cmd, flarc.WithHelp(true))
	cancel()
	os.Exit(code)
}

func must[T any](v T, err error) func(*log.Logger) T {
	return func(l *log.Logger) T {
		if err != nil {
			l.Fatal(err)
		}
		return v
	}
}
