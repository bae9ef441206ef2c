package main

import (
	"log"

	"github.com/abinishjha1/ai-interviewHackathon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
