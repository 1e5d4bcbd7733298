package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/bettermarks/licensing-k8s/pkg/configs/synth"
	"github.com/bettermarks/licensing-k8s/pkg/logging"
	"github.com/labstack/gommon/log"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger, err := logging.New(cl.Stderr(), commonFlag.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}

		return task(ctx, logger, commonFlag, cl, newpos)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	conf *synth.Config,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask returns a task which receives the sealed synthesis config.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		conf, err := commonFlag.SynthConfig()
		if err != nil {
			if errors.Is(err, synth.ErrMissingImageTag) {
				return fmt.Errorf("%w. Pass --image-tag or set $%s", err, EnvImageTag)
			}
			return err
		}
		logger.Debugf("segment = %s, namespace = %s, image = %s", conf.Segment(), conf.Namespace(), conf.Image())
		return task(ctx, logger, conf, cl, params)
	})
}
