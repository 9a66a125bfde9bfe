package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/caiorlm/logichain/signature"
)

var genKeyArgs struct {
	KeyPath string
}

// GenKeyCommand generates a signing keypair.
var GenKeyCommand = cli.Command{
	Name:  "genkey",
	Usage: "Generate a proof signing keypair.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "key, k",
			Usage:       "Path to write the private key PEM.",
			Value:       "signer_key.pem",
			Destination: &genKeyArgs.KeyPath,
		},
	},
	Action: func(c *cli.Context) (retErr error) {
		defer func() { retErr = wrapReturnedError(retErr) }()

		key, err := signature.GenerateKey()
		if err != nil {
			return err
		}

		if err := os.WriteFile(genKeyArgs.KeyPath, signature.MarshalPrivateKeyPEM(key), 0600); err != nil {
			return err
		}

		pubPem, err := signature.MarshalPublicKeyPEM(&key.PublicKey)
		if err != nil {
			return err
		}
		pubPath := genKeyArgs.KeyPath + ".pub"
		if err := os.WriteFile(pubPath, pubPem, 0644); err != nil {
			return err
		}

		log.WithField("key", genKeyArgs.KeyPath).
			WithField("pub", pubPath).
			Info("Wrote signing keypair")
		return nil
	},
}
