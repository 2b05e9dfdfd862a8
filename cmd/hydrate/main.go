package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"printsync/internal/hydrate"
	"printsync/internal/ledger"
	"printsync/internal/manifest"
	"printsync/internal/metrics"
	"printsync/internal/model"
	"printsync/internal/store"
)

func main() {
	var (
		dataDir      string
		backend      string
		snapshotDir  string
		role         string
		actorID      string
		actorEmail   string
		ledgerSource string // store|file
		ledgerFile   string
		httpAddr     string
		serve        bool
	)
	flag.StringVar(&dataDir, "data-dir", "./data/ordersim", "record store directory")
	flag.StringVar(&backend, "backend", "pebble", "store backend: memory|pebble|badger")
	flag.StringVar(&snapshotDir, "snapshot-dir", "./snapshots", "snapshot directory")
	flag.StringVar(&role, "role", "partner", "actor role: customer|partner")
	flag.StringVar(&actorID, "id", "u1", "customer id")
	flag.StringVar(&actorEmail, "email", "quickprint@cbit.ac.in", "partner shop email")
	flag.StringVar(&ledgerSource, "ledger-source", "store", "ledger source: store|file")
	flag.StringVar(&ledgerFile, "ledger-file", "./ledger/all_orders.jsonl", "ledger file for file source")
	flag.StringVar(&httpAddr, "http", ":9090", "http listen for /metrics")
	flag.BoolVar(&serve, "serve", false, "keep serving /metrics after recovery")
	flag.Parse()

	ctx := context.Background()

	actor := model.Actor{ID: actorID, Role: model.RoleCustomer}
	if role == "partner" {
		actor = model.Actor{ID: actorID, Role: model.RolePartner, Email: actorEmail}
	}

	kv, err := store.Open(backend, dataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer kv.Close()

	mreg := metrics.NewRegistry()
	go func() {
		http.Handle("/metrics", mreg.Handler())
		_ = http.ListenAndServe(httpAddr, nil)
	}()

	var rd ledger.Reader = ledger.NewStoreReader(kv)
	if ledgerSource == "file" {
		rd = ledger.NewFileReader(ledgerFile)
	}

	mr := manifest.NewFilesystemManifest(snapshotDir)
	restorer := hydrate.NewRestorer(kv, actor, mr, snapshotDir)

	t0 := time.Now()
	result, err := restorer.RestoreAndReplay(ctx, rd)
	mreg.HydrateSec.Set(time.Since(t0).Seconds())
	if err != nil {
		log.Fatalf("restore failed: %v", err)
	}
	mreg.ReplayApplied.Add(float64(result.Applied))
	mreg.ReplaySkipped.Add(float64(result.Skipped))
	log.Printf("restore completed for scope %s: applied=%d skipped=%d in %s",
		actor.ScopeID(), result.Applied, result.Skipped, time.Since(t0))

	if serve {
		select {}
	}
}
