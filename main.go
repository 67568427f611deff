package main

import "github.com/zbiljic/coverletter/cmd"

func main() {
	cmd.Execute()
}
