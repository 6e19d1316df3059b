package main

import (
	"net/http"
	"os"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/handlers"
	"photo-portfolio/pkg/metadata"
	"photo-portfolio/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		klog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	meta, closeMeta := metadata.Open(cfg.ExiftoolPath)
	defer closeMeta()
	svc := services.NewService(cfg, meta)

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), handlers.New(cfg, svc).Routes()); err != nil {
		klog.Errorf("Server error: %v", err)
		closeMeta()
		klog.Flush()
		os.Exit(1)
	}
}
