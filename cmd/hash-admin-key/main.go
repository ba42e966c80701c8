package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/jafarshop/topup/internal/api/middleware"
)

func main() {
	key := flag.String("key", "", "admin API key to hash (generated when empty)")
	flag.Parse()

	apiKey := *key
	if apiKey == "" {
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate API key: %v\n", err)
			os.Exit(1)
		}
		apiKey = "adm_" + hex.EncodeToString(buf)
	}

	hash, err := middleware.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Admin API key ready")
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Println("⚠️  Store this key securely; only the hash below goes into the environment.")
	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", hash)
}
