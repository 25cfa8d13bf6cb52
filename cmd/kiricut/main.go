package main

import "kiricut/internal/cli"

func main() {
	cli.Main()
}
