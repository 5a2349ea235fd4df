package main

import (
	"github.com/andrescamacho/alchemist-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
