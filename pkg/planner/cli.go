package planner

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func CLIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "top-n",
			Value: DefaultTopN,
			Usage: "maximum number of direct paths to assemble",
		},
		&cli.IntFlag{
			Name:  "top-k",
			Value: DefaultTopK,
			Usage: "maximum number of intercity candidates to compose",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: DefaultTopK,
			Usage: "concurrent intercity compositions",
		},
	}
}

func NewServiceFromCLI(c *cli.Context) *Service {
	service := NewServiceFromEnvironment()

	if c.IsSet("top-n") {
		service.Planner.TopN = c.Int("top-n")
	}
	if c.IsSet("top-k") {
		service.Planner.TopK = c.Int("top-k")
	}
	if c.IsSet("workers") {
		service.Planner.Workers = c.Int("workers")
	}

	return service
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Search public transport routes between two places",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "origin",
				Usage:    "origin place name or address",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "destination",
				Usage:    "destination place name or address",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "dump the full search result",
			},
		}, CLIFlags()...),
		Action: func(c *cli.Context) error {
			result := NewServiceFromCLI(c).SearchPublicTransport(c.Context, c.String("origin"), c.String("destination"))

			if c.Bool("debug") {
				pretty.Println(result)
				return nil
			}

			fmt.Fprintln(c.App.Writer, result.Message)
			for i, route := range result.Routes {
				fmt.Fprintf(c.App.Writer, "%d. %s | %s | %s | %s\n", i+1, route.Duration, route.Distance, route.Cost, strings.Join(route.TransportSummary, " > "))
				for _, step := range route.Steps {
					fmt.Fprintf(c.App.Writer, "   - %s (%s, %s)\n", step.Instruction, step.Duration, step.Distance)
				}
			}

			if !result.Success {
				return cli.Exit(result.Message, 1)
			}

			return nil
		},
	}
}
