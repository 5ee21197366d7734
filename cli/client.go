package main

import (
	"context"

	"github.com/golang/glog"
	"github.com/krancour/memberadmin/client"
	"github.com/krancour/memberadmin/internal/source"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/krancour/memberadmin/internal/table/web"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// getServerAddress returns the address of the API server to use, if any. A
// server given by flag wins over a saved one and --local disables both.
func getServerAddress(c *cli.Context) (string, error) {
	if c.GlobalBool(flagLocal) {
		return "", nil
	}
	if server := c.GlobalString(flagServer); server != "" {
		return server, nil
	}
	config, err := getConfig()
	if err != nil {
		return "", errors.Wrap(err, "error retrieving configuration")
	}
	if config == nil {
		return "", nil
	}
	return config.APIAddress, nil
}

func getLoader(c *cli.Context) (table.Loader, error) {
	sourceURL := c.GlobalString(flagSource)
	if sourceURL == "" {
		if c.Bool(flagRefresh) {
			if err := source.InvalidateCacheFromEnvironment(); err != nil {
				return nil, errors.Wrap(err, "error discarding cached members")
			}
		}
		return source.GetLoaderFromEnvironment()
	}
	loaderConfig := web.NewLoaderConfigWithDefaults()
	loaderConfig.URL = sourceURL
	loaderConfig.AllowInsecure = c.GlobalBool(flagInsecure)
	return web.NewLoader(loaderConfig)
}

// getSession returns a remote table session when an API server is configured
// and a local one otherwise.
func getSession(ctx context.Context, c *cli.Context) (tableSession, error) {
	serverAddress, err := getServerAddress(c)
	if err != nil {
		return nil, err
	}
	if serverAddress != "" {
		if c.Bool(flagRefresh) {
			return nil, errors.Errorf(
				"--%s cannot be used with an API server; use --%s to work locally",
				flagRefresh,
				flagLocal,
			)
		}
		return newRemoteSession(
			ctx,
			client.NewSessionsClient(serverAddress, c.GlobalBool(flagInsecure)),
		)
	}
	loader, err := getLoader(c)
	if err != nil {
		return nil, errors.Wrap(err, "error configuring member source")
	}
	return newLocalSession(ctx, loader, glog.Warningf), nil
}
