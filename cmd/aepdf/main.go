package main

import "github.com/astroedu/astroedu/cmd/aepdf/cmd"

func main() {
	cmd.Execute()
}
