package main

import "multistopwatch/cmd/client/cmd"

func main() {
	cmd.Execute()
}
