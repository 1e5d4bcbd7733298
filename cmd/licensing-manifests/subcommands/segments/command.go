package segments

import (
	"context"
	"fmt"

	"github.com/bettermarks/licensing-k8s/cmd/licensing-manifests/subcommands/common"
	"github.com/bettermarks/licensing-k8s/pkg/segment"
	"github.com/labstack/gommon/log"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List segments which manifests can be synthesized for.",
		struct{}{},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
List segments, one per line, as "<segment> <stage>".
`),
	)
}

func Task() common.TaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		for _, s := range segment.All() {
			if _, err := fmt.Fprintf(cl.Stdout(), "%s %s\n", s, s.Stage()); err != nil {
				return err
			}
		}
		return nil
	}
}
