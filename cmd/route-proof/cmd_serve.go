package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/caiorlm/logichain/api"
	"github.com/caiorlm/logichain/db"
	"github.com/caiorlm/logichain/ingest"
	"github.com/caiorlm/logichain/ledger"
	"github.com/caiorlm/logichain/route"
)

var serveArgs struct {
	ListenPort      int
	DbPath          string
	KeyPath         string
	LedgerURL       string
	ContractAddress string

	IngestContract string
	IngestInterval int
	IngestLat      float64
	IngestLon      float64
}

// ServeCommand starts the route validation daemon.
var ServeCommand = cli.Command{
	Name:  "serve",
	Usage: "Start the route validation and proof daemon.",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:        "listen, l",
			Usage:       "Port to serve the route API on.",
			Value:       8080,
			Destination: &serveArgs.ListenPort,
		},
		cli.StringFlag{
			Name:        "db",
			Usage:       "Path to the route database.",
			Value:       "routes.db",
			Destination: &serveArgs.DbPath,
		},
		cli.StringFlag{
			Name:        "key, k",
			Usage:       "Path to the signing private key PEM.",
			Value:       "signer_key.pem",
			Destination: &serveArgs.KeyPath,
		},
		cli.StringFlag{
			Name:        "ledger",
			Usage:       "Ledger submission endpoint URL.",
			Value:       "http://127.0.0.1:9944/proofs",
			Destination: &serveArgs.LedgerURL,
		},
		cli.StringFlag{
			Name:        "contract-address",
			Usage:       "On-ledger contract address for submissions.",
			Destination: &serveArgs.ContractAddress,
		},
		cli.StringFlag{
			Name:        "ingest-contract",
			Usage:       "Contract to feed from the simulated GPS source.",
			Destination: &serveArgs.IngestContract,
		},
		cli.IntFlag{
			Name:        "ingest-interval",
			Usage:       "Seconds between GPS reads.",
			Value:       1,
			Destination: &serveArgs.IngestInterval,
		},
		cli.Float64Flag{
			Name:        "ingest-lat",
			Usage:       "Base latitude for the simulated GPS source.",
			Destination: &serveArgs.IngestLat,
		},
		cli.Float64Flag{
			Name:        "ingest-lon",
			Usage:       "Base longitude for the simulated GPS source.",
			Destination: &serveArgs.IngestLon,
		},
	},
	Action: func(c *cli.Context) (retErr error) {
		defer func() { retErr = wrapReturnedError(retErr) }()

		keyPem, err := os.ReadFile(serveArgs.KeyPath)
		if err != nil {
			return err
		}

		store, err := db.OpenDB(serveArgs.DbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		endpoint := ledger.NewHTTPEndpoint(serveArgs.LedgerURL)
		signer, err := ledger.NewProofSigner(ledger.Config{
			NetworkURL:      serveArgs.LedgerURL,
			ContractAddress: serveArgs.ContractAddress,
		}, keyPem, endpoint)
		if err != nil {
			return err
		}

		table := route.NewTable()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		exitCh := make(chan error, 1)
		if serveArgs.IngestContract != "" {
			if err := startIngest(ctx, table, store, exitCh); err != nil {
				return err
			}
		}

		server := api.NewServer(table, store, signer)
		go func() {
			exitCh <- server.ListenAndServe(fmt.Sprintf(":%d", serveArgs.ListenPort))
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)

		select {
		case err := <-exitCh:
			return err
		case <-sigCh:
			log.Info("Shutting down...")
			return nil
		}
	},
}

// startIngest feeds the configured contract from the simulated GPS
// source. A rejected reading is point-local: it is logged and the loop
// moves on.
func startIngest(ctx context.Context, table *route.Table, store *db.DB, exitCh chan<- error) error {
	contractID := serveArgs.IngestContract
	if _, err := table.Begin(route.RouteConfig{
		ContractID: contractID,
		MaxError:   50,
	}); err != nil {
		return err
	}

	source := ingest.NewSimSource(serveArgs.IngestLat, serveArgs.IngestLon, 0.0001, 5)
	collector := ingest.NewCollector(
		source,
		time.Duration(serveArgs.IngestInterval)*time.Second,
		16,
	)

	go func() {
		exitCh <- collector.CollectWorker(ctx)
	}()

	go func() {
		l := log.WithField("contract", contractID)
		for {
			select {
			case <-ctx.Done():
				return
			case point := <-collector.Points():
				err := table.With(contractID, func(v *route.RouteValidator) error {
					if _, err := v.AddPoint(point, time.Now()); err != nil {
						return err
					}
					return store.SaveRoute(v)
				})
				if err != nil {
					l.WithError(err).Warn("Rejected ingested point")
				}
			}
		}
	}()

	return nil
}
