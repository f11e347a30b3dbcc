package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/dataaggregator/global"
	"github.com/travigo/transitplanner/pkg/planner"
	"github.com/travigo/transitplanner/pkg/redis_client"
	"github.com/travigo/transitplanner/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the transit planner web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				}, planner.CLIFlags()...),
				Action: func(c *cli.Context) error {
					env := util.GetEnvironmentVariables()
					if env["TRAVIGO_REDIS_ADDRESS"] != "" {
						if err := redis_client.Connect(c.Context); err != nil {
							log.Warn().Err(err).Msg("Could not connect to redis")
						}
					}

					global.Setup(planner.NewServiceFromCLI(c))

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
