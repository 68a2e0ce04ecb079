package main

import "searchrank/internal/cli"

func main() {
	cli.Execute()
}
