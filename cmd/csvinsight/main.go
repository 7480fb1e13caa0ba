package main

import "github.com/csv-insight/backend/internal/cli"

// Version is set during build
var Version = "dev"

func main() {
	cli.Execute(Version)
}
