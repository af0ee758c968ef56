package main

import (
	"github.com/gitopskit/strata/pkg/cli"
)

func main() {
	cli.Execute()
}
