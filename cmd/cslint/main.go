package main

import "cslint/internal/cli"

func main() {
	cli.Execute()
}
