package main

import "github.com/notargets/staticmesh/cmd"

func main() {
	cmd.Execute()
}
