package main

import "github.com/urfave/cli"

const (
	flagInsecure = "insecure"
	flagLocal    = "local"
	flagOutput   = "output"
	flagPage     = "page"
	flagRefresh  = "refresh"
	flagSearch   = "search"
	flagServer   = "server"
	flagSource   = "source"
	flagYes      = "yes"
)

var (
	cliFlagOutput = cli.StringFlag{
		Name: "output, o",
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
	cliFlagRefresh = cli.BoolFlag{
		Name: "refresh, r",
		Usage: "Discard cached members and load them from the member source; " +
			"only applies without an API server",
	}
	cliFlagYes = cli.BoolFlag{
		Name:  "yes, y",
		Usage: "Do not ask for confirmation before deleting members",
	}
)
