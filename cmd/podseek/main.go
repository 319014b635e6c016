package main

import (
	"github.com/morphuslabs/podseek/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
