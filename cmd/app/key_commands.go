package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tenantvault/cmd/app/commands"
	"github.com/allisson/tenantvault/internal/app"
	"github.com/allisson/tenantvault/internal/config"
	cryptoService "github.com/allisson/tenantvault/internal/crypto/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key for the credential vault",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-provider",
					Value: "",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateMasterKey(
					ctx,
					cryptoService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "rotate-master-key",
			Usage: "Re-encrypt every stored credential under a new master key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "new-master-key",
					Aliases: []string{"k"},
					Value:   "",
					Sources: cli.EnvVars("NEW_VAULT_MASTER_KEY"),
					Usage:   "New master key value (generated when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				rotation, err := container.RotationUseCase()
				if err != nil {
					return err
				}

				return commands.RunRotateMasterKey(
					ctx,
					rotation,
					container.NewSecretCipherForKey,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("new-master-key"),
					cfg.KMSProvider,
					cfg.KMSKeyURI,
				)
			},
		},
	}
}
