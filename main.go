package main

import "github.com/jsvoboda/shelfscan/cmd"

func main() {
	cmd.Execute()
}
