package main

import "github.com/agrimitra/agrimitra/internal/cli"

func main() {
	cli.Execute()
}
