package main

import (
	"os"

	"git.home.luguber.info/inful/codeblocks/cmd/codeblocks/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
