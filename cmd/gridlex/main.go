package main

import "github.com/user/gridlex/internal/cli"

func main() {
	cli.Execute()
}
