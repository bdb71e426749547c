package main

import "github.com/notargets/advstencil/cmd"

func main() {
	cmd.Execute()
}
