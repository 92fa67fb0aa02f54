// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the DishHub HTTP API server and its
// operator commands.
//
// # Commands
//
//   - serve: runs migrations and starts the HTTP server (default).
//   - migrate up | down --steps N | version: manages the schema and exits.
//   - user create: creates an account, e.g. the first admin.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"os"

	"github.com/taibuivan/dishhub/cmd/api/cli"
)

func main() {
	root := cli.NewRootCommand()

	root.AddCommand(cli.NewServeCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewUserCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
