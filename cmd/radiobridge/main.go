package main

import (
	"github.com/radiobridge/radiobridge/cmd/radiobridge/commands"
)

func main() {
	commands.Execute()
}
