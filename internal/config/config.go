// Package config holds the immutable run configuration of the motion
// estimator and the lenient parsing of its command-line values.
package config

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultMacroBlockSize  = 5
	DefaultMotionThreshold = 25

	outputSuffix    = "_out"
	outputExtension = ".mkv"
)

// Config is fixed for the duration of a run.
type Config struct {
	// MacroBlockSize is the side of the square blocks the frame is split into.
	MacroBlockSize int
	// MotionThreshold is the minimum match distance flagged as motion.
	MotionThreshold int
	// Workers bounds the number of block rows searched concurrently.
	Workers int
}

func Default() Config {
	return Config{
		MacroBlockSize:  DefaultMacroBlockSize,
		MotionThreshold: DefaultMotionThreshold,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

func (c Config) Validate() error {
	if c.MacroBlockSize <= 0 {
		return errors.Errorf("macro block size must be positive, got %d", c.MacroBlockSize)
	}
	if c.MotionThreshold < 0 {
		return errors.Errorf("motion threshold must not be negative, got %d", c.MotionThreshold)
	}
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// ParseMacroBlockSize accepts a positive decimal integer and falls back to
// DefaultMacroBlockSize with a warning otherwise.
func ParseMacroBlockSize(s string, logger *zap.SugaredLogger) int {
	v, ok := parseDigits(s)
	if !ok || v == 0 {
		logger.Warnf("macro block size must be a positive integer - using default [%d]", DefaultMacroBlockSize)
		return DefaultMacroBlockSize
	}
	return v
}

// ParseMotionThreshold accepts a non-negative decimal integer and falls back
// to DefaultMotionThreshold with a warning otherwise.
func ParseMotionThreshold(s string, logger *zap.SugaredLogger) int {
	v, ok := parseDigits(s)
	if !ok {
		logger.Warnf("motion threshold must be a positive integer - using default [%d]", DefaultMotionThreshold)
		return DefaultMotionThreshold
	}
	return v
}

// parseDigits only accepts plain ASCII digits, so signs, spaces and
// decimal points are rejected.
func parseDigits(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// OutputPath returns the annotated video path for input: the input's stem
// with "_out.mkv" appended, in the same directory.
func OutputPath(input string) string {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		// Dotfiles such as ".clip" have no extension.
		stem = name
	}
	return filepath.Join(dir, stem+outputSuffix+outputExtension)
}
