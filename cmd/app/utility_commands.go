package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/utilkit/cmd/app/commands"
)

func getUtilityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "compare-versions",
			Usage:     "Compare two dotted versions, printing -1, 0 or 1",
			ArgsUsage: "<version> <version>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 2 {
					return cli.Exit("compare-versions requires exactly two versions", 2)
				}
				return commands.RunCompareVersions(cmd.Args().Get(0), cmd.Args().Get(1), commands.DefaultIO())
			},
		},
		{
			Name:  "convert",
			Usage: "Coerce a value into a type and print its canonical form",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Value:   "",
					Usage:   "Value to convert",
				},
				&cli.StringFlag{
					Name:    "to",
					Aliases: []string{"t"},
					Value:   "string",
					Usage:   "Target type name or number (see list-types)",
				},
				&cli.StringFlag{
					Name:  "decimal-separator",
					Value: "",
					Usage: "Force '.' or ',' as decimal separator (detected when empty)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunConvert(
					cmd.String("value"),
					cmd.String("to"),
					cmd.String("decimal-separator"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "list-types",
			Usage: "List the target types accepted by convert",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunListTypes(commands.DefaultIO())
			},
		},
	}
}
