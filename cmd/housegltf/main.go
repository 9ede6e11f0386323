// housegltf inspects the house mesh and exports it as binary glTF.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/Faultbox/house-viewer/internal/assets"
	"github.com/Faultbox/house-viewer/internal/config"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/engine/texture"
	"github.com/Faultbox/house-viewer/internal/export"
	"github.com/Faultbox/house-viewer/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo()
	case "export", "x":
		os.Exit(cmdExport(args))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`housegltf - house mesh utility

Usage:
  housegltf <command> [options]

Commands:
  info                                  Show vertex, index and draw range counts
  export [-o file.glb] [-assets dir]    Write the mesh and its textures as GLB
         [-no-textures] [-v]

Examples:
  housegltf info
  housegltf export -o house.glb
  housegltf export -assets ./mydata -o house.glb`)
}

func cmdInfo() {
	house := model.House()
	b := house.Bounds()

	fmt.Printf("Vertices: %d\n", house.VertexCount())
	fmt.Printf("Indices:  %d (%d triangles)\n", house.IndexCount(), house.IndexCount()/3)
	fmt.Printf("Bounds:   (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANGE\tOFFSET\tCOUNT\tBYTES\tTEXTURE")
	for _, r := range house.Ranges {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", r.Name, r.Offset, r.Count, r.ByteOffset(), r.Texture)
	}
	w.Flush()
}

// cmdExport returns the process exit code so deferred cleanup runs first.
func cmdExport(args []string) int {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	out := flags.String("o", "house.glb", "Output file")
	dir := flags.String("assets", "", "Directory searched for textures before the builtin ones")
	noTextures := flags.Bool("no-textures", false, "Export geometry and materials only")
	verbose := flags.Bool("v", false, "Verbose logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	files, err := assets.NewDefault(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer files.Close()

	defaults := config.Default().Assets
	specs := texture.DefaultSpecs(defaults.WallsTexture, defaults.WoodTexture, defaults.StoneTexture)

	var src fs.FS = files
	if *noTextures {
		src = nil
	}
	if err := export.WriteFile(*out, model.House(), src, specs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s\n", *out)
	return 0
}
