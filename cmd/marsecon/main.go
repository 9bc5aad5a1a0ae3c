package main

import "github.com/mars-sim/mars-sim-sub053/internal/adapters/cli"

func main() {
	cli.Execute()
}
