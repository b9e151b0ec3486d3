package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"backend/api/reference"
	"backend/cmd"

	ufcli "github.com/urfave/cli/v3"
)

// make version a variable so the build system can inject it
var version = "unknown"

func main() {
	var runCmd *ufcli.Command
	args := os.Args

	if len(args) > 1 && args[1] == "client" {
		if len(args) == 2 {
			fmt.Println("client command requires a subcommand")
			os.Exit(2)
		}
		runCmd = cmd.GetClientCmd(args[2])
		if runCmd == nil {
			fmt.Printf("invalid client command %q\n", args[2])
			os.Exit(2)
		}
		args = args[2:]
	} else {
		if len(args) > 1 && args[1] == "server" {
			args = append([]string{args[0]}, args[2:]...)
		}
		runCmd = cmd.ServerCli()
	}

	if version != "unknown" {
		reference.Version = version
	}
	runCmd.Version = version

	if err := runCmd.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}
