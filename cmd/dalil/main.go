package main

import "dalil/internal/cli"

func main() {
	cli.Execute()
}
