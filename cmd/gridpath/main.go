package main

import "github.com/pdrpinto/gridastar/internal/cli"

func main() {
	cli.Execute()
}
