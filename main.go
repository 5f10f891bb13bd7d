package main

import "beammp-manager/cmd"

func main() {
	cmd.Execute()
}
