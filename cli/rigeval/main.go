// Package main is the rigeval command itself.
package main

import (
	"log"
	"os"

	rigcli "go.viam.com/rigging/cli"
)

func main() {
	app := rigcli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
