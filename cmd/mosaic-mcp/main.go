package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/mosaic-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-mcp/internal/pipeline"
	"github.com/ironsheep/mosaic-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version, --help and subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("mosaic-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "compose":
			configureLogging()
			if err := runCompose(os.Args[2:]); err != nil {
				log.Fatalf("compose: %v", err)
			}
			return
		}
	}

	debug := configureLogging()
	if debug {
		log.Printf("Mosaic MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(debug)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// configureLogging sends logs to stderr (stdout is for MCP protocol) and
// reports whether debug logging is enabled.
func configureLogging() bool {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return os.Getenv("MOSAIC_MCP_LOG_LEVEL") == "debug"
}

func printUsage() {
	fmt.Println("mosaic-mcp - MCP server for photomosaic composition")
	fmt.Println()
	fmt.Println("Usage: mosaic-mcp [options]")
	fmt.Println("       mosaic-mcp compose -sources DIR -target FILE [flags]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Compose flags:")
	fmt.Println("  -sources DIR     Directory of source images used as tiles")
	fmt.Println("  -target FILE     Image to rebuild as a mosaic")
	fmt.Println("  -out FILE        Output image (.png, .jpg or .bmp, default: mosaic.png)")
	fmt.Printf("  -tile N          Tile side length in pixels (default: %d)\n", pipeline.DefaultTileSize)
	fmt.Printf("  -cache FILE      Signature cache (default: %s in the source directory)\n", pipeline.DefaultCachePath)
	fmt.Println("  -no-cache        Ignore the signature cache")
	fmt.Println("  -grid COLOR      Outline every tile, e.g. #ff0000")
	fmt.Println("  -square DIR      Crop sources to squares into DIR and use those")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  MOSAIC_MCP_LOG_LEVEL=debug   Enable debug logging")
	fmt.Println()
	fmt.Println("Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func runCompose(args []string) error {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	var cfg pipeline.Config
	var squareDir string
	fs.StringVar(&cfg.SourceDir, "sources", "", "directory of source images")
	fs.StringVar(&cfg.TargetPath, "target", "", "image to rebuild as a mosaic")
	fs.StringVar(&cfg.OutputPath, "out", "mosaic.png", "output image")
	fs.IntVar(&cfg.TileSize, "tile", pipeline.DefaultTileSize, "tile side length in pixels")
	fs.StringVar(&cfg.CachePath, "cache", "", "signature cache file (default: "+pipeline.DefaultCachePath+" in the source directory)")
	fs.BoolVar(&cfg.NoCache, "no-cache", false, "ignore the signature cache")
	fs.StringVar(&cfg.GridColor, "grid", "", "outline every tile in this color")
	fs.StringVar(&squareDir, "square", "", "crop sources to squares into this directory first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	debug := os.Getenv("MOSAIC_MCP_LOG_LEVEL") == "debug"
	cache := imaging.NewImageCache()

	if squareDir != "" {
		sq, err := imaging.SquareDir(cache, cfg.SourceDir, squareDir)
		if err != nil {
			return err
		}
		log.Printf("Squared %d source images into %s", len(sq.Squared), squareDir)
		cfg.SourceDir = squareDir
	}

	res, err := pipeline.New(cache, debug).Run(cfg)
	if err != nil {
		return err
	}
	log.Printf("Mosaic %dx%d with %d tiles (%d distinct sources) saved to %s",
		res.Width, res.Height, res.Cells, res.DistinctIDs, res.OutputPath)
	return nil
}
