package main

import "github.com/dmitrymomot/xrcaps/internal/cli"

func main() {
	cli.Execute()
}
