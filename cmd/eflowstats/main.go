package main

import (
	"eflow-stats/internal/cli"
)

func main() {
	cli.Execute()
}
