package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/krancour/memberadmin/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var connectCommand = cli.Command{
	Name:      "connect",
	Usage:     "Use a memberadmin API server for subsequent commands",
	ArgsUsage: "SERVER",
	Action:    connect,
}

var disconnectCommand = cli.Command{
	Name:   "disconnect",
	Usage:  "Stop using a memberadmin API server",
	Action: disconnect,
}

func connect(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("connect requires exactly one argument: SERVER")
	}
	address := strings.TrimSuffix(c.Args().First(), "/")
	if !strings.HasPrefix(address, "http://") &&
		!strings.HasPrefix(address, "https://") {
		address = fmt.Sprintf("https://%s", address)
	}

	if err := client.NewBaseClient(
		address,
		c.GlobalBool(flagInsecure),
	).ExecuteRequest(
		context.Background(),
		client.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "healthz",
			SuccessCode: http.StatusOK,
		},
	); err != nil {
		return errors.Wrapf(err, "error reaching API server at %s", address)
	}

	if err := saveConfig(&config{APIAddress: address}); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}
	fmt.Printf("Connected to %s.\n", address)
	return nil
}

func disconnect(c *cli.Context) error {
	if err := deleteConfig(); err != nil {
		return err
	}
	fmt.Println("Disconnected. Subsequent commands will run locally.")
	return nil
}
