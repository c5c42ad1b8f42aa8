package main

import "github.com/mcoot/queensrush/internal/cli"

func main() {
	cli.Execute()
}
