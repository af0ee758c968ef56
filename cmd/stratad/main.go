package main

import (
	"log"

	"github.com/gitopskit/strata/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
