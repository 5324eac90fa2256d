// spheretool is a CLI utility for inspecting and exporting generated sphere meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/Faultbox/planetview/internal/engine/sphere"
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
		cmdInfo(args)
	case "export", "x":
		cmdExport(args)
	case "dump":
		cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spheretool - UV sphere mesh utility

Usage:
  spheretool <command> [options]

Commands:
  info   [-segments N] [-radius R]            Show counts and check the mesh is closed
  export [-segments N] [-radius R] <out>      Write the mesh as .gltf or .glb
  dump   [-segments N] [-radius R] [-n N]     Print the first vertices and triangles

Examples:
  spheretool info -segments 64
  spheretool export -segments 32 planet.glb
  spheretool dump -segments 2 -n 4`)
}

// meshFlags registers the flags every command shares.
func meshFlags(fs *flag.FlagSet) (*int, *float64) {
	segments := fs.Int("segments", 64, "Vertical segments (rings + 1)")
	radius := fs.Float64("radius", 1, "Sphere radius")
	return segments, radius
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	segments, radius := meshFlags(fs)
	fs.Parse(args)

	mesh := sphere.Build(float32(*radius), *segments)

	fmt.Printf("Segments:   %d (%d per ring)\n", mesh.Segments, mesh.HorizontalSegments())
	fmt.Printf("Radius:     %g\n", mesh.Radius)
	fmt.Printf("Vertices:   %d\n", len(mesh.Vertices))
	fmt.Printf("Triangles:  %d\n", len(mesh.Triangles))
	fmt.Printf("GPU bytes:  %d vertex, %d index\n", len(mesh.Vertices)*32, len(mesh.Triangles)*3*4)

	if err := sphere.CheckClosed(mesh); err != nil {
		fmt.Printf("Closed:     no (%v)\n", err)
		os.Exit(1)
	}
	fmt.Println("Closed:     yes")
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	segments, radius := meshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: spheretool export [options] <file.gltf|file.glb>")
		os.Exit(1)
	}
	out := fs.Arg(0)

	var binary bool
	switch strings.ToLower(filepath.Ext(out)) {
	case ".glb":
		binary = true
	case ".gltf":
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported extension %q (want .gltf or .glb)\n", filepath.Ext(out))
		os.Exit(1)
	}

	mesh := sphere.Build(float32(*radius), *segments)

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
			os.Exit(1)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := sphere.ExportGLTF(f, mesh, binary); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d vertices, %d triangles)\n", out, len(mesh.Vertices), len(mesh.Triangles))
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	segments, radius := meshFlags(fs)
	limit := fs.Int("n", 8, "Number of vertices and triangles to print (0 = all)")
	fs.Parse(args)

	mesh := sphere.Build(float32(*radius), *segments)

	verts := mesh.Vertices
	tris := mesh.Triangles
	if *limit > 0 {
		verts = verts[:min(*limit, len(verts))]
		tris = tris[:min(*limit, len(tris))]
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	fmt.Println("Vertices:")
	cfg.Fdump(os.Stdout, verts)
	fmt.Println("Triangles:")
	cfg.Fdump(os.Stdout, tris)
}
