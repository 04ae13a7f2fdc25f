// Package main runs block-matching motion estimation over a video file and
// writes the annotated result next to it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kmmndr/motion_estimation/internal/config"
	"github.com/kmmndr/motion_estimation/internal/logging"
	"github.com/kmmndr/motion_estimation/internal/motion"
	"github.com/kmmndr/motion_estimation/internal/video"
)

const (
	flagWorkers   = "workers"
	flagNoDisplay = "no-display"
	flagReport    = "report"
	flagDebug     = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "motion-estimation",
		Usage:     "mark block motion between consecutive video frames",
		ArgsUsage: "<video> <macro-block-size> <motion-threshold>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  flagWorkers,
				Value: config.Default().Workers,
				Usage: "number of block rows searched concurrently",
			},
			&cli.BoolFlag{
				Name:  flagNoDisplay,
				Usage: "do not show the annotated frames in a window",
			},
			&cli.StringFlag{
				Name:  flagReport,
				Usage: "write per-frame motion reports as JSON lines to this file",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}
}

func checkArgs(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("3 arguments are required. \nThe path to the video file, " +
			"the macro block size, and the motion threshold.")
	}
	return nil
}

// parseConfig falls back to the defaults for unusable block size and
// threshold arguments.
func parseConfig(c *cli.Context, logger *zap.SugaredLogger) (string, config.Config) {
	cfg := config.Default()
	cfg.MacroBlockSize = config.ParseMacroBlockSize(c.Args().Get(1), logger)
	cfg.MotionThreshold = config.ParseMotionThreshold(c.Args().Get(2), logger)
	cfg.Workers = c.Int(flagWorkers)
	return c.Args().Get(0), cfg
}

func run(c *cli.Context) (err error) {
	if err := checkArgs(c); err != nil {
		return err
	}

	logger, err := logging.NewLogger("motion-estimation", c.Bool(flagDebug))
	if err != nil {
		return errors.Wrap(err, "unable to create logger")
	}
	defer func() {
		_ = logger.Sync()
	}()

	videoPath, cfg := parseConfig(c, logger)
	detector, err := motion.NewDetector(cfg, video.NewCircleMarker(), logger)
	if err != nil {
		return err
	}

	stream, info, err := video.Open(videoPath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, stream.Close())
	}()
	logger.Infow("video opened",
		"path", videoPath,
		"width", info.Width,
		"height", info.Height,
		"fps", info.FrameRate)

	outputPath := config.OutputPath(videoPath)
	writer, err := video.NewWriter(outputPath, info)
	if err != nil {
		return err
	}
	sinks := video.MultiSink{writer}

	var stop motion.StopSignal
	if !c.Bool(flagNoDisplay) {
		window := video.NewWindow()
		sinks = append(sinks, window)
		stop = window
	}
	defer func() {
		err = multierr.Append(err, sinks.Close())
	}()

	var observers []motion.FrameObserver
	if path := c.String(flagReport); path != "" {
		reportFile, createErr := os.Create(path)
		if createErr != nil {
			return errors.Wrap(createErr, "unable to create report file")
		}
		defer func() {
			err = multierr.Append(err, reportFile.Close())
		}()
		observers = append(observers, motion.NewReportWriter(reportFile, stream.TimeAtFrame))
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return estimate(ctx, logger, detector, stream, sinks, stop, observers, outputPath)
}

func estimate(
	ctx context.Context,
	logger *zap.SugaredLogger,
	detector *motion.Detector,
	src motion.FrameSource,
	sink motion.FrameSink,
	stop motion.StopSignal,
	observers []motion.FrameObserver,
	outputPath string,
) error {
	summary, err := motion.NewEstimator(detector, logger, observers...).Run(ctx, src, sink, stop)
	if err != nil {
		return err
	}

	logger.Infow("annotated video written",
		"path", outputPath,
		"frames", summary.Frames,
		"flagged", summary.Flagged)
	return nil
}
