package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-rig/internal/logger"
	"github.com/cwbudde/algo-rig/rig/joints"
	"github.com/cwbudde/algo-rig/rig/rotation"
)

var (
	rigPath      string
	calcType     string
	precision    string
	rotationType string
	angleUnit    string
	rotOrder     string
	logLevel     string
	logFormat    string
	jsonOutput   bool
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rig",
			Aliases:     []string{"r"},
			Usage:       "path to a YAML rig description",
			Destination: &rigPath,
		},
		&cli.StringFlag{
			Name:        "calc",
			Usage:       "calculation type (scalar, sse, avx, neon, any)",
			Value:       "any",
			Destination: &calcType,
		},
		&cli.StringFlag{
			Name:        "precision",
			Usage:       "weight storage precision (f32, f16)",
			Value:       "f32",
			Destination: &precision,
		},
		&cli.StringFlag{
			Name:        "rotation",
			Usage:       "output rotation representation (euler, quaternion)",
			Value:       "euler",
			Destination: &rotationType,
		},
		&cli.StringFlag{
			Name:        "unit",
			Usage:       "Euler angle unit (degrees, radians)",
			Value:       "degrees",
			Destination: &angleUnit,
		},
		&cli.StringFlag{
			Name:        "order",
			Usage:       "Euler rotation order (xyz, xzy, yxz, yzx, zxy, zyx)",
			Value:       "xyz",
			Destination: &rotOrder,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print machine-readable JSON",
			Destination: &jsonOutput,
		},
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if logFormat == "json" {
		return logger.JSON(os.Stderr, level)
	}
	return logger.Text(os.Stderr, level)
}

// configuration resolves the global flags into a joints configuration.
func configuration() (joints.Configuration, error) {
	var (
		cfg joints.Configuration
		err error
	)
	if cfg.CalculationType, err = joints.ParseCalculationType(calcType); err != nil {
		return cfg, err
	}
	if cfg.FloatingPoint, err = joints.ParseFloatingPoint(precision); err != nil {
		return cfg, err
	}
	if cfg.RotationType, err = rotation.ParseRepresentation(rotationType); err != nil {
		return cfg, err
	}
	if cfg.RotationUnit, err = rotation.ParseAngleUnit(angleUnit); err != nil {
		return cfg, err
	}
	if cfg.RotationOrder, err = rotation.ParseOrder(rotOrder); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadEvaluator reads the rig named by --rig and builds an evaluator.
func loadEvaluator() (*joints.RawBehavior, *joints.Evaluator, joints.Configuration, error) {
	cfg, err := configuration()
	if err != nil {
		return nil, nil, cfg, err
	}
	if rigPath == "" {
		return nil, nil, cfg, fmt.Errorf("--rig is required")
	}

	rig, err := loadRig(rigPath)
	if err != nil {
		return nil, nil, cfg, err
	}

	eval, err := joints.NewEvaluator(rig,
		joints.WithConfiguration(cfg),
		joints.WithLogger(newLogger()))
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("build %s: %w", rigPath, err)
	}
	return rig, eval, cfg, nil
}

func writeJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
