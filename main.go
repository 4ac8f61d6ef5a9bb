// Package main is the entry point of nrkcat.
package main

import (
	"github.com/nrkcat/nrkcat/cmd"
	"github.com/nrkcat/nrkcat/config"
	"github.com/nrkcat/nrkcat/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	defer log.Close()

	cmd.Execute()
}
