package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func wrapReturnedError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*cli.ExitError); ok {
		return err
	}
	return cli.NewExitError(err.Error(), 1)
}

func main() {
	log.SetLevel(log.DebugLevel)

	app := cli.NewApp()
	app.Name = "route-proof"
	app.Usage = "Validate delivery routes and submit signed proofs to the ledger."
	app.Commands = []cli.Command{
		ServeCommand,
		GenKeyCommand,
	}
	app.Run(os.Args)
}
