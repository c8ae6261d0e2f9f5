package main

import "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/cli"

func main() {
	cli.Execute()
}
