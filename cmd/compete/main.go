package main

import "github.com/mcoot/competeinator/internal/cli"

func main() {
	cli.Execute()
}
