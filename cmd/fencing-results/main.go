package main

import "github.com/pfrederiksen/fencing-results/internal/cli"

func main() {
	cli.Execute()
}
