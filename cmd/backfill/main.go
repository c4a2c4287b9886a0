// backfill reproduce reservas históricas exportadas en CSV a través de la misma ingesta
// que usa el ciclo de reservas, para reconstruir relaciones, contadores y segmentos.
//
// Uso: go run ./cmd/backfill --file reservas.csv [--charset latin1] [--comma ';'] [--workers 4]
// Las reservas ya procesadas se reportan como duplicadas, por lo que es seguro reejecutarlo.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
	"github.com/jhoicas/seller-crm/internal/infrastructure/bookingcsv"
	"github.com/jhoicas/seller-crm/internal/infrastructure/storage"
	"github.com/jhoicas/seller-crm/pkg/config"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run devuelve el código de salida; los defer se ejecutan antes de os.Exit.
func run(args []string) int {
	fs := pflag.NewFlagSet("backfill", pflag.ContinueOnError)
	path := fs.StringP("file", "f", "", "ruta del CSV de reservas")
	charset := fs.String("charset", "utf-8", "codificación del archivo (utf-8 | latin1)")
	comma := fs.String("comma", ",", "separador de columnas")
	workers := fs.Int("workers", 4, "ingestas concurrentes")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *path == "" && fs.NArg() > 0 {
		*path = fs.Arg(0)
	}
	if *path == "" {
		fmt.Fprintln(os.Stderr, "Uso: backfill --file reservas.csv")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("backfill")

	f, err := os.Open(*path)
	if err != nil {
		log.Error().Err(err).Str("file", *path).Msg("abrir CSV")
		return 1
	}
	defer f.Close()

	opts := bookingcsv.Options{Charset: *charset}
	if r := []rune(*comma); len(r) == 1 {
		opts.Comma = r[0]
	}
	events, rowErrs, err := bookingcsv.Read(f, opts)
	if err != nil {
		log.Error().Err(err).Msg("leer CSV")
		return 1
	}
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila descartada")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		return 1
	}
	defer repos.Close()
	if repos.Memory != nil {
		log.Warn().Msg("STORAGE_DRIVER=memory: el resultado no se persiste")
	}

	uc := crm.NewIngestionUseCase(repos.TxRunner, repos.Businesses, segmentation.Rules{
		VIPBookings:     cfg.CRM.VIPBookings,
		VIPSpend:        decimal.NewFromInt(cfg.CRM.VIPSpend),
		RegularBookings: cfg.CRM.RegularBookings,
	}, log)

	start := time.Now()
	var (
		mu     sync.Mutex
		counts = make(map[crm.Outcome]int)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*workers, 1))
	for _, evt := range events {
		g.Go(func() error {
			res := uc.OnBookingCommitted(gctx, evt)
			mu.Lock()
			counts[res.Outcome]++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.Info().
		Int("rows", len(events)+len(rowErrs)).
		Int("invalid_rows", len(rowErrs)).
		Int("applied", counts[crm.OutcomeApplied]).
		Int("duplicate", counts[crm.OutcomeDuplicate]).
		Int("skipped", counts[crm.OutcomeSkipped]).
		Int("rejected", counts[crm.OutcomeRejected]).
		Int("failed", counts[crm.OutcomeFailed]).
		Dur("elapsed", time.Since(start)).
		Msg("backfill finalizado")

	if counts[crm.OutcomeFailed] > 0 {
		return 1
	}
	return 0
}
