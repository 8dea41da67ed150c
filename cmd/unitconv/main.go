package main

import (
	"os"

	"unitconv.dev/cmd/unitconv/commands"
)

func main() {
	os.Exit(commands.Execute())
}
