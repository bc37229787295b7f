package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/utilkit/cmd/app/commands"
	"github.com/allisson/utilkit/internal/app"
	"github.com/allisson/utilkit/internal/config"
	settingsUseCase "github.com/allisson/utilkit/internal/settings/usecase"
)

func sectionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "section",
		Aliases: []string{"s"},
		Value:   "appSettings",
		Usage:   "Settings section: 'appSettings' or 'connectionStrings'",
	}
}

func keyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"k"},
		Required: true,
		Usage:    "Setting key",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withSettings opens the protected stores from configuration and runs fn.
func withSettings(
	ctx context.Context,
	fn func(container *app.Container, stores *settingsUseCase.CryptoConfiguration) error,
) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	stores, err := container.CryptoConfiguration(ctx)
	if err != nil {
		return err
	}
	return fn(container, stores)
}

func getSettingCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "declare-setting",
			Usage: "Declare an empty protected setting",
			Flags: []cli.Flag{sectionFlag(), keyFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSettings(ctx, func(container *app.Container, stores *settingsUseCase.CryptoConfiguration) error {
					return commands.RunDeclareSetting(
						ctx,
						stores,
						container.Logger(),
						cmd.String("section"),
						cmd.String("key"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "get-setting",
			Usage: "Print the decrypted value of a protected setting",
			Flags: []cli.Flag{sectionFlag(), keyFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSettings(ctx, func(container *app.Container, stores *settingsUseCase.CryptoConfiguration) error {
					return commands.RunGetSetting(
						ctx,
						stores,
						cmd.String("section"),
						cmd.String("key"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "set-setting",
			Usage: "Encrypt and store the value of a declared setting",
			Flags: []cli.Flag{
				sectionFlag(),
				keyFlag(),
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Value:   "",
					Usage:   "Plain value; empty stores an empty setting",
				},
				&cli.BoolFlag{
					Name:  "stdin",
					Value: false,
					Usage: "Read the value from the first line of standard input",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSettings(ctx, func(container *app.Container, stores *settingsUseCase.CryptoConfiguration) error {
					return commands.RunSetSetting(
						ctx,
						stores,
						container.Logger(),
						cmd.String("section"),
						cmd.String("key"),
						cmd.String("value"),
						cmd.Bool("stdin"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "list-settings",
			Usage: "List the declared keys of a section",
			Flags: []cli.Flag{sectionFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withSettings(ctx, func(container *app.Container, stores *settingsUseCase.CryptoConfiguration) error {
					return commands.RunListSettings(
						ctx,
						stores,
						cmd.String("section"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
