package main

import (
	"os"

	"github.com/Codingworld786/ecommerce-fullstack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
