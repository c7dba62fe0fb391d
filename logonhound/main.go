package main

import (
	"os"

	"github.com/lkarlslund/logonhound/modules/cli"
	_ "github.com/lkarlslund/logonhound/modules/convert"
	_ "github.com/lkarlslund/logonhound/modules/persistence"
	"github.com/rs/zerolog/log"
)

func main() {
	// started without arguments it behaves like a plain conversion in the current folder
	cli.OverrideArgs = []string{"convert"}

	err := cli.CliMainEntryPoint()

	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}
