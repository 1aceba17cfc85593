package main

import (
	"github.com/micbed86/FancyNote-sub000/cmd"
)

func main() {
	cmd.Execute()
}
