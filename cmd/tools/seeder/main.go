package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/noah-isme/sales-commission/internal/commission"
	dbgen "github.com/noah-isme/sales-commission/internal/db/gen"
	"github.com/noah-isme/sales-commission/internal/obs"
	"github.com/noah-isme/sales-commission/internal/vm"
)

var defaultFactors = []commission.Entry{
	{MarkupPercentage: 10, Factor: 0.002},
	{MarkupPercentage: 15, Factor: 0.004},
	{MarkupPercentage: 20, Factor: 0.010},
	{MarkupPercentage: 25, Factor: 0.013},
	{MarkupPercentage: 30, Factor: 0.016},
	{MarkupPercentage: 40, Factor: 0.020},
	{MarkupPercentage: 50, Factor: 0.025},
}

type seedProduct struct {
	name          string
	listPrice     float64
	standardPrice float64
}

var defaultProducts = []seedProduct{
	{vm.ProductCPU, 12.0, 7.5},
	{vm.ProductRAM, 4.0, 2.2},
	{vm.ProductDisk, 0.12, 0.06},
	{vm.BackupProductNames[0], 0.05, 0.02},
}

func main() {
	_ = godotenv.Load()
	logger := obs.NewLogger("console", "info").With().Str("component", "seeder").Logger()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	q := dbgen.New(tx)

	existing, err := q.ListAllFactors(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("list factors")
	}
	seen := make(map[int32]bool, len(existing))
	for _, f := range existing {
		seen[f.MarkupPercentage] = true
	}
	created := 0
	for _, e := range defaultFactors {
		if seen[int32(e.MarkupPercentage)] {
			continue
		}
		if _, err := q.CreateFactor(ctx, dbgen.CreateFactorParams{
			MarkupPercentage: int32(e.MarkupPercentage),
			CommissionFactor: e.Factor,
			Active:           true,
		}); err != nil {
			logger.Fatal().Err(err).Int("markup", e.MarkupPercentage).Msg("create factor")
		}
		created++
	}

	for _, p := range defaultProducts {
		if _, err := q.UpsertProduct(ctx, dbgen.UpsertProductParams{
			Name:          p.name,
			ListPrice:     p.listPrice,
			StandardPrice: p.standardPrice,
		}); err != nil {
			logger.Fatal().Err(err).Str("product", p.name).Msg("upsert product")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Fatal().Err(err).Msg("commit seed")
	}
	logger.Info().Int("factors_created", created).Int("products", len(defaultProducts)).Msg("seeding completed")
}
