// Package main is the entry point for the leaveportal binary.
//
// @title           HC Leave Portal API
// @version         1.0
// @description     Employee authentication, route gating and identity administration for the HC leave portal.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"

	"github.com/hcportal/leave-portal/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(context.Background()); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
