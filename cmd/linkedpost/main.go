package main

import (
	"fmt"
	"os"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/cli"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := cli.Execute(Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
