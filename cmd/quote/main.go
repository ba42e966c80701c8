package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jafarshop/topup/internal/catalog"
	"github.com/jafarshop/topup/internal/config"
	"github.com/jafarshop/topup/internal/domain"
	"github.com/jafarshop/topup/internal/pricing"
	"github.com/jafarshop/topup/internal/service"
)

func main() {
	productFlag := flag.String("product", "", "Product slug (e.g. mobile-legends)")
	offerFlag := flag.String("offer", "", "Offer name as listed in the catalog")
	qtyFlag := flag.String("qty", "1", "Quantity")
	paymentFlag := flag.String("payment", "", "Payment method label")
	playerFlag := flag.String("player", "", "Player ID")
	phoneFlag := flag.String("phone", "", "Contact phone")
	promoFlag := flag.String("promo", "", "Promo code")
	flag.Parse()

	if *productFlag == "" || *offerFlag == "" {
		fmt.Println("Usage: go run cmd/quote/main.go -product <slug> -offer <name> [-qty N] [-promo CODE] [-payment LABEL] [-player ID] [-phone NUMBER]")
		fmt.Println("Example: go run cmd/quote/main.go -product mobile-legends -offer \"80 Token\" -qty 2 -promo HEMAT10")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	registry, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	product, err := registry.Lookup(*productFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	offer, ok := product.FindOffer(*offerFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown offer %q for %s\n", *offerFlag, product.Slug)
		os.Exit(1)
	}

	qty := domain.ParseQuantity(*qtyFlag)
	if !qty.Valid() {
		fmt.Fprintf(os.Stderr, "Invalid quantity %q\n", *qtyFlag)
		os.Exit(1)
	}

	d := domain.DefaultDraft()
	patch := domain.DraftPatch{
		PlayerID:     playerFlag,
		Quantity:     &qty,
		ContactPhone: phoneFlag,
	}
	selected := domain.Some(offer)
	patch.SelectedOffer = &selected
	if *paymentFlag != "" {
		method := domain.Some(*paymentFlag)
		patch.PaymentMethod = &method
	}
	if *promoFlag != "" {
		code := domain.Some(*promoFlag)
		patch.PromoCode = &code
	}
	d = d.Apply(patch)

	price := pricing.NewCalculator(product.PromoCodes).Quote(d)
	summary := service.BuildSummary(product, d, price)

	fmt.Println(summary.Text())
	fmt.Printf("\nSubtotal: %s\n", service.FormatRupiah(price.Subtotal))
	fmt.Printf("Discount: %s (%s%%)\n", service.FormatRupiah(price.Discount), price.DiscountRate.Shift(2).String())

	if !d.IsSubmittable() {
		fmt.Printf("\n⚠️  %s\n", domain.SubmitHint)
		return
	}

	link, err := summary.DeepLink(cfg.DeepLink.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build deep link: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n%s\n", link)
}
