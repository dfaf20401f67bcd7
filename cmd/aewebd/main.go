package main

import "github.com/astroedu/astroedu/cmd/aewebd/cmd"

func main() {
	cmd.Execute()
}
