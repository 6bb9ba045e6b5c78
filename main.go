package main

import (
	"flag"
	"log"

	"github.com/DotRPM/dot-image/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	flag.Parse()

	// With no flag, migrate then serve. Convenient for single-container
	// deployments.
	if !*shouldRunMigrations && !*shouldRunServer {
		*shouldRunMigrations = true
		*shouldRunServer = true
	}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}
}
