package main

import (
	"fmt"

	"github.com/krancour/memberadmin/internal/version"
	"github.com/urfave/cli"
)

var versionCommand = cli.Command{
	Name:  "version",
	Usage: "Print the client version",
	Action: func(c *cli.Context) error {
		fmt.Printf(
			"memberadmin %s -- commit %s\n",
			version.Version(),
			version.Commit(),
		)
		return nil
	},
}
