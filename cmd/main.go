package main

import (
	"os"
	_ "time/tzdata"

	"taskflow-app/taskflow/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
