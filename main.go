package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"asciiglobe/internal/assets"
	"asciiglobe/internal/config"
	"asciiglobe/internal/debug"
	"asciiglobe/internal/scene"
	"asciiglobe/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	manifestPath := flag.String("manifest", "", "Layer manifest JSON (default: built-in layers under ./data)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	aspectRatio := flag.Float64("a", 2.0, "Character aspect ratio - adjust for font width (1.0-4.0, default: 2.0)")
	maxBoxes := flag.Int("boxes", 0, "Maximum boxes per layer (default: manifest value, 150000)")
	layer := flag.String("layer", "", "Initially selected layer key (default: first layer)")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("asciiglobe - Terminal globe of raster data layers and country boundaries")
		fmt.Println("\nUsage: asciiglobe [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// Validate aspect ratio
	if *aspectRatio < 1.0 || *aspectRatio > 4.0 {
		fmt.Fprintf(os.Stderr, "Error: Aspect ratio must be between 1.0 and 4.0\n")
		os.Exit(1)
	}

	if *maxBoxes < 0 {
		fmt.Fprintf(os.Stderr, "Error: -boxes must not be negative\n")
		os.Exit(1)
	}

	// Set up debug logging if requested
	if *debugLog != "" {
		closeLog, err := debug.Open(*debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer closeLog()
			debug.Logger().Info("asciiglobe debug log started")
			fmt.Printf("Debug logging enabled: %s\n", *debugLog)
		}
	}

	manifest := config.Default()
	if *manifestPath != "" {
		m, err := config.Load(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load manifest: %v\n", err)
			os.Exit(1)
		}
		manifest = m
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	// Load rasters and boundaries
	fmt.Println("Loading layers and boundaries...")
	sc, failures := scene.Assemble(ctx, manifest, assets.NewFetcher(), scene.Options{MaxBoxes: *maxBoxes})
	stop()
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", f)
	}
	fmt.Printf("Loaded %d layers, %d countries\n", len(sc.Layers), len(sc.Countries))

	// Create and run application
	fmt.Printf("Starting asciiglobe (aspect: %.1f)...\n", *aspectRatio)
	app, err := ui.NewApp(sc, ui.Options{CellAspect: *aspectRatio, Layer: *layer})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
