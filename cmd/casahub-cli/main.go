package main

import (
	"github.com/casahub/casahub-internal/internal/cli"
)

func main() {
	cli.Execute()
}
