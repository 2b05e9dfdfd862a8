package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"printsync/internal/identity"
	"printsync/internal/ledger"
	"printsync/internal/manifest"
	"printsync/internal/metrics"
	"printsync/internal/model"
	"printsync/internal/notify"
	"printsync/internal/order"
	"printsync/internal/report"
	"printsync/internal/snapshot"
	"printsync/internal/store"
)

// Config holds CLI flags for the simulator.
type Config struct {
	DataDir     string
	Backend     string // memory|pebble|badger
	Seed        bool
	SnapshotDir string
	HTTPAddr    string
	// Kafka sinks
	KafkaBootstrap string
	LedgerSink     string // store|file|kafka|both
	ManifestSink   string // file|kafka|both
	TopicLedger    string
	TopicManifest  string
	LedgerDir      string
}

func main() {
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("ordersim failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.DataDir, "data-dir", "./data/ordersim", "record store directory")
	flag.StringVar(&cfg.Backend, "backend", "pebble", "store backend: memory|pebble|badger")
	flag.BoolVar(&cfg.Seed, "seed", true, "install demo dataset for first-time actors")
	flag.StringVar(&cfg.SnapshotDir, "snapshot-dir", "./snapshots", "snapshot directory")
	flag.StringVar(&cfg.HTTPAddr, "http", ":8080", "http listen for /metrics")
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", "", "kafka bootstrap servers, e.g. localhost:9092")
	flag.StringVar(&cfg.LedgerSink, "ledger-sink", "store", "ledger sink: store|file|kafka|both")
	flag.StringVar(&cfg.ManifestSink, "manifest-sink", "file", "manifest sink: file|kafka|both")
	flag.StringVar(&cfg.TopicLedger, "topic-ledger", "printsync.all-orders", "kafka topic for ledger entries")
	flag.StringVar(&cfg.TopicManifest, "topic-manifest", "printsync.manifests", "kafka topic for manifests (compacted)")
	flag.StringVar(&cfg.LedgerDir, "ledger-dir", "./ledger", "directory for the file ledger sink")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	ctx := context.Background()
	log.Printf("starting ordersim backend=%s data=%s seed=%v", cfg.Backend, cfg.DataDir, cfg.Seed)

	kv, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	mreg := metrics.NewRegistry()
	go func() {
		http.Handle("/metrics", mreg.Handler())
		http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		})
		_ = http.ListenAndServe(cfg.HTTPAddr, nil)
	}()

	// Ledger: the store writer is always on (it is what Refresh reads);
	// file and kafka sinks mirror entries out for a future backend.
	var lw ledger.Writer = ledger.NewStoreWriter(kv)
	if cfg.LedgerSink == "file" || cfg.LedgerSink == "both" {
		fw, err := ledger.NewFileWriter(cfg.LedgerDir, "all_orders.jsonl")
		if err != nil {
			return fmt.Errorf("init ledger file: %w", err)
		}
		lw = ledger.NewMultiWriter(lw, fw)
	}
	if (cfg.LedgerSink == "kafka" || cfg.LedgerSink == "both") && cfg.KafkaBootstrap != "" {
		lw = ledger.NewMultiWriter(lw, ledger.NewKafkaWriter(cfg.KafkaBootstrap, cfg.TopicLedger))
	}

	ids := identity.NewStoreProvider(kv)

	customer := model.Actor{ID: "u1", Role: model.RoleCustomer, Name: "Student User", College: "CBIT"}
	partner := model.Actor{ID: "s1", Role: model.RolePartner, Name: "QuickPrint Hub", Email: "quickprint@cbit.ac.in"}

	engineOpts := []order.Option{order.WithLedger(lw), order.WithMetrics(mreg)}
	if cfg.Seed {
		engineOpts = append(engineOpts, order.WithSeed())
	}
	notifier := notify.NewEngine(ids, kv, notify.WithMetrics(mreg))
	eng := order.NewEngine(ids, kv, append(engineOpts, order.WithNotifier(notifier))...)

	// Customer session: place an order.
	if err := ids.Login(ctx, customer); err != nil {
		return fmt.Errorf("login customer: %w", err)
	}
	o, err := eng.Create(ctx,
		model.PrintSpec{FileName: "Lab_Record.pdf", Pages: 18, Copies: 1, Binding: "Stapled", TotalCost: 54},
		model.ShopSelection{ShopName: "QuickPrint Hub - CBIT", ShopEmail: partner.Email},
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	log.Printf("customer placed %s (%s)", o.OrderNumber, o.ID)
	logOrders(ctx, eng, "customer")

	// Partner session: pull the ledger, work the order to completion.
	if err := ids.Login(ctx, partner); err != nil {
		return fmt.Errorf("login partner: %w", err)
	}
	applied, err := eng.Refresh(ctx, ledger.NewStoreReader(kv))
	if err != nil {
		return fmt.Errorf("partner refresh: %w", err)
	}
	log.Printf("partner refresh applied %d ledger entries", applied)
	for _, next := range []model.Status{model.StatusAccepted, model.StatusPrinting, model.StatusCompleted} {
		if _, err := eng.UpdateStatus(ctx, o.ID, next); err != nil {
			return fmt.Errorf("partner update %s: %w", next, err)
		}
		log.Printf("partner moved %s to %s", o.OrderNumber, next)
	}
	if n, err := notifier.UnreadCount(ctx); err == nil {
		log.Printf("partner unread notifications: %d", n)
	}
	if err := notifier.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}

	// Snapshot the partner projection and publish the manifest.
	snapID := time.Now().UTC().Format(time.RFC3339)
	snap := snapshot.NewFilesystemSnapshotter(cfg.SnapshotDir)
	if err := snap.WriteSnapshot(ctx, snapID, partner, kv); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	entries, err := ledger.NewStoreReader(kv).Entries()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	maniFS := manifest.NewFilesystemManifest(cfg.SnapshotDir)
	var mani manifest.Publisher = maniFS
	if (cfg.ManifestSink == "kafka" || cfg.ManifestSink == "both") && cfg.KafkaBootstrap != "" {
		maniK := manifest.NewKafkaManifest(cfg.KafkaBootstrap, cfg.TopicManifest, "printsync-manifest-"+partner.ScopeID())
		if cfg.ManifestSink == "kafka" {
			mani = maniK
		} else {
			mani = manifest.MultiPublisher(maniFS, maniK)
		}
	}
	if err := mani.PublishLatest(manifest.Manifest{
		Scope:           partner.ScopeID(),
		SnapshotID:      snapID,
		LastLedgerIndex: int64(len(entries)),
	}); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}
	log.Printf("snapshot and manifest published: %s", snapID)

	// Customer session again: the completion is visible after a refresh.
	if err := ids.Login(ctx, customer); err != nil {
		return fmt.Errorf("relogin customer: %w", err)
	}
	if _, err := eng.Refresh(ctx, ledger.NewStoreReader(kv)); err != nil {
		return fmt.Errorf("customer refresh: %w", err)
	}
	logOrders(ctx, eng, "customer after refresh")

	// Partner revenue windows from the shared ledger.
	for k, t := range report.Aggregate(entries, 86400) {
		log.Printf("report %s: orders=%d amount=%d completed=%d", k, t.Orders, t.SumAmount, t.Completed)
	}

	log.Printf("ordersim completed")
	return nil
}

func logOrders(ctx context.Context, eng *order.Engine, label string) {
	seq, err := eng.List(ctx)
	if err != nil {
		log.Printf("%s: list failed: %v", label, err)
		return
	}
	for o := range seq {
		log.Printf("%s: %s %s [%s]", label, o.OrderNumber, o.FileName, o.StatusText)
	}
}
