package main

import "github.com/liamg/ouilookup/cmd"

func main() {
	cmd.Execute()
}
