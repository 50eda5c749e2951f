package main

import (
	"github.com/storyloom/storyloom/internal/cli"
)

func main() {
	cli.Execute()
}
