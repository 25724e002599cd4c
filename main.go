package main

import (
	"log"

	"github.com/talentwire/matchengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
