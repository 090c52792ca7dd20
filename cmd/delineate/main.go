package main

import (
	"log"
	"os"

	"github.com/maseology/catchment"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: delineate <controlfile.cdel>")
	}
	if err := catchment.BuildDelineation(os.Args[1]); err != nil {
		log.Fatalf(" *** Fatal error: %v", err)
	}
}
