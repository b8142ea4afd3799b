package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	catalogapp "github.com/dwikikusuma/coffee-order/internal/catalog/app"
	"github.com/dwikikusuma/coffee-order/internal/catalog/domain"
	"github.com/dwikikusuma/coffee-order/internal/catalog/infra/memory"
	"github.com/dwikikusuma/coffee-order/pkg/config"
	"github.com/dwikikusuma/coffee-order/pkg/logger"
)

// catalog validates a menu file and prints it the way the catalog screen
// would list it.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "catalog", Env: cfg.AppEnv, Level: cfg.LogLevel, Output: os.Stderr})

	file := flag.String("file", cfg.CatalogFile, "menu YAML file; the built-in menu when empty")
	category := flag.String("category", domain.CategoryAll, "category filter")
	sortBy := flag.String("sort", string(domain.SortPopular), "popular, price-low, price-high or rating")
	flag.Parse()

	if err := run(context.Background(), os.Stdout, *file, *category, domain.SortOrder(*sortBy)); err != nil {
		log.Error("catalog failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, file, category string, order domain.SortOrder) error {
	var (
		repo *memory.ProductRepo
		err  error
	)
	if file == "" {
		repo, err = memory.NewDefaultProductRepo()
	} else {
		repo, err = memory.LoadFile(file)
	}
	if err != nil {
		return err
	}

	svc := catalogapp.NewService(repo)
	products, err := svc.ListProducts(ctx, category, order)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tPOPULAR")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%t\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Rating, p.Popular)
	}
	return tw.Flush()
}
