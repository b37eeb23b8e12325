package main

import "github.com/blacktop/go-emojimosaic/cmd/emojimosaic/cmd"

func main() {
	cmd.Execute()
}
