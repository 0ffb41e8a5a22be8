package main

import "github.com/matthewlchambers/standardizedinventories/cmd"

func main() {
	cmd.Execute()
}
