package main

import "setproxy/internal/cli"

func main() {
	cli.Execute()
}
