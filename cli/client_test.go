package main

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newTestCLIContext(
	t *testing.T,
	globalArgs []string,
	commandArgs []string,
) *cli.Context {
	globalSet := flag.NewFlagSet("memberadmin", flag.ContinueOnError)
	globalSet.String(flagServer, "", "")
	globalSet.String(flagSource, "", "")
	globalSet.Bool(flagLocal, false, "")
	globalSet.Bool(flagInsecure, false, "")
	require.NoError(t, globalSet.Parse(globalArgs))
	set := flag.NewFlagSet("list", flag.ContinueOnError)
	set.Bool(flagRefresh, false, "")
	require.NoError(t, set.Parse(commandArgs))
	return cli.NewContext(nil, set, cli.NewContext(nil, globalSet, nil))
}

func TestGetSessionRefresh(t *testing.T) {
	testCases := []struct {
		name        string
		globalArgs  []string
		setup       func()
		expectedErr string
	}{
		{
			name:        "with an API server",
			globalArgs:  []string{"--server", "https://memberadmin.example.com"},
			setup:       func() {},
			expectedErr: "--refresh cannot be used with an API server",
		},
		{
			name:       "local with an unreachable cache",
			globalArgs: []string{"--local"},
			setup: func() {
				os.Setenv("MEMBERS_SOURCE_CACHE_ENABLED", "true")
			},
			expectedErr: "error discarding cached members",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			os.Unsetenv("MEMBERS_SOURCE_CACHE_ENABLED")
			os.Unsetenv("REDIS_HOST")
			defer os.Unsetenv("MEMBERS_SOURCE_CACHE_ENABLED")
			testCase.setup()
			c := newTestCLIContext(t, testCase.globalArgs, []string{"--refresh"})
			_, err := getSession(context.Background(), c)
			require.Error(t, err)
			require.Contains(t, err.Error(), testCase.expectedErr)
		})
	}
}
