package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/fpgrowth/command/mine"
	"github.com/mitchellh/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("fpgrowth", version)
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"mine": func() (cli.Command, error) { return mine.New(ui), nil },
	}

	code, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %v\n", err)
		return 1
	}

	return code
}
