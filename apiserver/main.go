package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/krancour/memberadmin/internal/version"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.Infof(
		"Starting memberadmin API server -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	apiServer, err := getAPIServerFromEnvironment()
	if err != nil {
		glog.Fatal(err)
	}

	glog.Error(apiServer.ListenAndServe())
}
