package main

import (
	"flag"
	"log"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.WebPort, "Port to serve on")
	flag.Parse()
	cfg.WebPort = *port

	webServer := server.NewServer(cfg)

	log.Printf("Phong Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=%s", cfg.WebPort, cfg.Scene)

	if err := webServer.Start(); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
