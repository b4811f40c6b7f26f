package main

import "go-launchgrid/cmd"

func main() {
	cmd.Execute()
}
