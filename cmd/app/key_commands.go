package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/utilkit/cmd/app/commands"
	"github.com/allisson/utilkit/internal/app"
	"github.com/allisson/utilkit/internal/config"
	cryptoService "github.com/allisson/utilkit/internal/crypto/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Create the per-user key file used by the keyfile protector",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				store, err := container.KeyFileStore()
				if err != nil {
					return err
				}

				return commands.RunCreateKey(store, container.Logger(), commands.DefaultIO())
			},
		},
		{
			Name:  "delete-key",
			Usage: "Delete the key file; protected settings become unreadable",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Value: false,
					Usage: "Skip the confirmation prompt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				store, err := container.KeyFileStore()
				if err != nil {
					return err
				}

				return commands.RunDeleteKey(store, container.Logger(), cmd.Bool("force"), commands.DefaultIO())
			},
		},
		{
			Name:  "generate-salt",
			Usage: "Generate a random value for SETTINGS_SALT",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateSalt(commands.DefaultIO())
			},
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt text with a password and salt (PBKDF2 + AES-CBC)",
			Flags: cipherFlags("text", "Plain text to encrypt"),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunEncrypt(
					cryptoService.NewPasswordCipher(),
					cmd.String("text"),
					cmd.String("password"),
					saltFlagOrConfig(cmd),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt Base64 ciphertext produced by encrypt",
			Flags: cipherFlags("ciphertext", "Base64 ciphertext to decrypt"),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunDecrypt(
					cryptoService.NewPasswordCipher(),
					cmd.String("ciphertext"),
					cmd.String("password"),
					saltFlagOrConfig(cmd),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "hash-token",
			Usage: "Hash an API bearer token for API_TOKEN_HASH (generates one when omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Value:   "",
					Usage:   "Plain token to hash; a random token is generated when empty",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashToken(
					container.TokenService(),
					cmd.String("token"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

func cipherFlags(inputName, inputUsage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     inputName,
			Required: true,
			Usage:    inputUsage,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Required: true,
			Usage:    "Password the key is derived from",
		},
		&cli.StringFlag{
			Name:    "salt",
			Aliases: []string{"s"},
			Value:   "",
			Usage:   "Base64 salt (defaults to SETTINGS_SALT)",
		},
	}
}

func saltFlagOrConfig(cmd *cli.Command) string {
	if salt := cmd.String("salt"); salt != "" {
		return salt
	}
	return config.Load().SettingsSalt
}
