// Package cli contains the rigeval command: evaluate rig files, sweep the arm solver and print
// constraint attribute schemas.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	// register constraint types.
	_ "go.viam.com/rigging/constraint/register"
)

const (
	// Flags.
	debugFlag    = "debug"
	logLevelFlag = "log-level"
	configFlag   = "config"
	framesFlag   = "frames"
	weightFlag   = "weight"
	samplesFlag  = "samples"
	seedFlag     = "seed"
	workersFlag  = "workers"
	linksFlag    = "links"
)

var app = &cli.App{
	Name:            "rigeval",
	Usage:           "evaluate procedural rig constraints offline",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Value: "info",
			Usage: "log level: debug, info, warn or error",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "eval",
			Usage:     "bind a rig file and print every transform after stepping it",
			UsageText: "rigeval eval --config <rig.json> [--frames N] [--weight w]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     configFlag,
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "load the rig from `FILE`",
				},
				&cli.IntFlag{
					Name:  framesFlag,
					Value: 1,
					Usage: "number of frames to evaluate",
				},
				&cli.Float64Flag{
					Name:  weightFlag,
					Value: 1,
					Usage: "scale applied to every constraint weight",
				},
			},
			Action: EvalAction,
		},
		{
			Name:  "sweep",
			Usage: "check the arm solver against forward kinematics on random reachable poses",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  samplesFlag,
					Value: 10000,
					Usage: "number of random joint configurations",
				},
				&cli.Int64Flag{
					Name:  seedFlag,
					Value: 1,
					Usage: "random seed",
				},
				&cli.IntFlag{
					Name:  workersFlag,
					Value: 4,
					Usage: "number of concurrent solvers",
				},
				&cli.Float64SliceFlag{
					Name:  linksFlag,
					Value: cli.NewFloat64Slice(defaultLinks[:]...),
					Usage: "the seven link lengths, root to tool tip",
				},
			},
			Action: SweepAction,
		},
		{
			Name:      "schema",
			Usage:     "print the JSON schema of constraint attributes",
			ArgsUsage: "[type]",
			Action:    SchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
