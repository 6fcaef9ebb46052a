package main

import (
	"github.com/0xERR0R/sigwatch/cmd"
)

func main() {
	cmd.Execute()
}
