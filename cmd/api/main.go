package main

import (
	"log"

	"invoice_dashboard/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("invoice-dashboard: %v", err)
	}
}
