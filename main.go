package main

import (
	"log"

	"github.com/kaya-ai/resume-radar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
