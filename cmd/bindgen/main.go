package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vmglue/javabind/bridge"
)

func main() {
	var (
		manifest    = flag.String("manifest", "", "Path to binding manifest (JSON)")
		symbols     = flag.Bool("symbols", false, "Print the exported symbol table and exit")
		java        = flag.Bool("java", false, "Print Java class stubs to stdout")
		outDir      = flag.String("out", "", "Write one .java stub per class into this directory")
		interactive = flag.Bool("i", false, "Interactive browser")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "Usage: bindgen -manifest <bindings.json> [-symbols] [-java] [-out dir]")
		fmt.Fprintln(os.Stderr, "       bindgen -manifest <bindings.json> -i  (interactive browser)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			bridge.SetLogger(log)
		}
	}

	classes, err := loadManifest(*manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*manifest, classes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(classes, *symbols, *java, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(classes []class, symbols, java bool, outDir string) error {
	if symbols {
		fmt.Print(symbolTable(classes))
	}

	if java {
		for _, c := range classes {
			fmt.Println(javaStub(c))
		}
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		for _, c := range classes {
			path := filepath.Join(outDir, c.decl.Name+".java")
			if err := os.WriteFile(path, []byte(javaStub(c)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Printf("Wrote %s\n", path)
		}
	}

	if !symbols && !java && outDir == "" {
		// Default to a short summary.
		total := 0
		for _, c := range classes {
			total += len(c.methods)
		}
		fmt.Printf("Manifest: %d classes, %d methods\n", len(classes), total)
		fmt.Print(symbolTable(classes))
	}
	return nil
}
