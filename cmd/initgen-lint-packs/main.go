package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-initgen/pkg/pack"
)

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [dirs...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint template packs: render every template with its defaults and check glob patterns.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"packs"}
	}

	packs, err := pack.LoadDirs(dirs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}
	if len(packs) == 0 {
		fmt.Fprintf(os.Stderr, "lint: no packs found in %v\n", dirs)
		os.Exit(1)
	}

	ctx := context.Background()
	failed := false
	for _, p := range packs {
		for _, v := range p.Lint(ctx) {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %s\n", p.Source(), v)
		}
	}
	if failed {
		os.Exit(1)
	}
}
