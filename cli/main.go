package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/krancour/memberadmin/internal/version"
	"github.com/urfave/cli"
)

func main() {
	// glog writes to files by default. Members skipped during a load are
	// reported on stderr instead.
	_ = flag.Set("logtostderr", "true")
	_ = flag.CommandLine.Parse([]string{})
	defer glog.Flush()

	app := cli.NewApp()
	app.Name = "memberadmin"
	app.Usage = "Search, page through, edit, and delete members"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name: "source, u",
			Usage: "Load members from the JSON array at the specified URL. If " +
				"unset, the member source is configured by MEMBERS_SOURCE_* " +
				"environment variables",
			EnvVar: "MEMBERADMIN_SOURCE_URL",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: "Allow insecure connections when using TLS",
		},
		cli.StringFlag{
			Name:   "server, s",
			Usage:  "Use the memberadmin API server at the specified address",
			EnvVar: "MEMBERADMIN_SERVER",
		},
		cli.BoolFlag{
			Name:  "local, l",
			Usage: "Ignore any API server and manage members in this process",
		},
	}
	app.Commands = []cli.Command{
		connectCommand,
		disconnectCommand,
		listCommand,
		shellCommand,
		versionCommand,
	}
	fmt.Println()
	if err := app.Run(os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		glog.Flush()
		os.Exit(1)
	}
	fmt.Println()
}
