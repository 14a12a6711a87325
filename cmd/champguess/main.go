package main

import (
	"github.com/odogan/champguess-go/internal/cli"
)

func main() {
	cli.Execute()
}
