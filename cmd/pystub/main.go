package main

import "pystub/internal/cli"

func main() {
	cli.Execute()
}
