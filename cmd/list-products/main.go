package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/service"
	"github.com/jafarshop/topup/internal/storefront"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

func main() {
	sync := flag.Bool("sync", false, "merge the storefront product listing before printing")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	registry, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	if *sync {
		if cfg.Storefront.BaseURL == "" {
			fmt.Fprintln(os.Stderr, "STOREFRONT_API_URL is not set")
			os.Exit(1)
		}
		fmt.Println("🔍 Fetching products from the storefront...")
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		client := storefront.NewClient(cfg.Storefront.BaseURL, cfg.Storefront.APIKey, logger)
		result, err := service.NewCatalogSyncer(client, registry, logger).RunOnce(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sync catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Fetched %d, updated %d, added %d, skipped %d\n\n",
			result.Fetched, result.Updated, result.Added, result.Skipped)
	}

	products := registry.List()
	nameWidth := 0
	for _, p := range products {
		for _, o := range p.Offers {
			if w := runewidth.StringWidth(o.Name); w > nameWidth {
				nameWidth = w
			}
		}
	}

	for _, p := range products {
		fmt.Printf("%s (%s)\n", p.Title, p.Slug)
		for _, o := range p.Offers {
			fmt.Printf("  - %s %s\n", runewidth.FillRight(o.Name, nameWidth), service.FormatRupiah(o.UnitPrice))
		}
		fmt.Printf("  Payment: %v\n", p.PaymentMethods)
		for code, rate := range p.PromoCodes {
			fmt.Printf("  Promo: %s (%s%%)\n", code, rate.Shift(2).String())
		}
		fmt.Println()
	}

	fmt.Printf("✅ %d products\n", len(products))
}
