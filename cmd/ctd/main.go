package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/centered-core/cmd/ctd/commands"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "classes":
		err = commands.Classes(args)
	case "theme":
		err = commands.Theme(args)
	case "layout":
		err = commands.Layout(args)
	case "version", "-v", "--version":
		fmt.Printf("ctd version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ctd - Centered scene graph CLI

Usage: ctd <command> [options]

Commands:
  init            Create centered.toml and a starter theme.toml
  classes         Resolve a utility class string to its computed style
  theme           Validate a theme file (TOML or YAML)
  layout          Lay out a scene file and print the widget tree
  version         Print version information
  help            Show this help message

Examples:
  ctd classes "p-4 bg-blue-500 rounded-lg"    Show the resolved style
  ctd classes --state hover "hover:bg-red-500" Apply a state variant
  ctd classes --toml btn-primary              Print the style as TOML
  ctd classes --width 800 "p-2 md:p-8"        Apply breakpoint variants
  ctd classes --dark "bg-white dark:bg-black" Apply dark variants
  ctd theme theme.yaml                        Check a YAML theme
  ctd layout --width 400 scene.yaml           Print rectangles at 400px

Configuration:
  Projects can be configured via centered.toml in the project root.
  Run 'ctd init' to create a new project with default configuration.`)
}
