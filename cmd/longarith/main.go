package main

import "github.com/MouseCreator/Long-arithmetic-system/cli"

func main() {
	cli.Execute()
}
