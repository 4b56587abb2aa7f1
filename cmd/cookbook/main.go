package main

import (
	"fmt"
	"os"

	"github.com/mwantia/cookbook/cmd/cookbook/cli"
	"github.com/mwantia/cookbook/cmd/cookbook/cli/client"
	"github.com/mwantia/cookbook/cmd/cookbook/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	info := cli.VersionInfo{
		Version: version,
		Commit:  commit,
	}
	root := cli.NewRootCommand(info)

	root.AddCommand(cli.NewVersionCommand(info))

	root.AddCommand(server.NewServeCommand())
	root.AddCommand(server.NewConfigCommand())
	root.AddCommand(server.NewMigrateCommand())
	root.AddCommand(client.NewQueryCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
