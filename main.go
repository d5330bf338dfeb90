package main

import (
	"os"

	"github.com/lumebar/lumebar/internal/lumebar"
)

func main() {
	os.Exit(lumebar.Main())
}
