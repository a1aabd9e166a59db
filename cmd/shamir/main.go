package main

import "github.com/izouxv/goShamir/cli"

func main() {
	cli.Execute()
}
