// Command addressbook is a personal contact store driven by line commands.
package main

import (
	"os"

	"github.com/roach88/addressbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
