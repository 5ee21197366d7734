package main

import (
	"context"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var listCommand = cli.Command{
	Name:  "list",
	Usage: "Print one page of members",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "search, q",
			Usage: "Only list members whose id, name, email, or role contain QUERY",
		},
		cli.IntFlag{
			Name:  "page, p",
			Usage: "Print the specified page",
			Value: 1,
		},
		cliFlagOutput,
		cliFlagRefresh,
	},
	Action: list,
}

func list(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	session, err := getSession(context.Background(), c)
	if err != nil {
		return err
	}
	defer closeSession(session, glog.Warningf)

	if loadErr := session.LoadError(); loadErr != "" {
		return errors.New(loadErr)
	}

	if _, err = session.Search(c.String(flagSearch)); err != nil {
		return err
	}
	page := c.Int(flagPage)
	view, err := session.SetPage(page)
	if err != nil {
		return err
	}
	if view.CurrentPage != page {
		return errors.Errorf(
			"page %d does not exist; there are %d page(s)",
			page,
			view.TotalPages,
		)
	}

	return renderView(os.Stdout, view, output)
}
