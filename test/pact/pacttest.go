//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product with id 1 exists"
	StateProductMissing  = "no product with id 404"
	StateBuyerReady      = "buyer session is active and product 1 is in stock"
	StateOutOfStock      = "buyer session is active and product 1 is out of stock"
)

const (
	ExistingProductID int64 = 1
	MissingProductID  int64 = 404

	SessionToken = "pact-session-token"

	BuyerEmail    = "pact.buyer@example.com"
	BuyerUsername = "pact-buyer"
	BuyerPassword = "pact-password"

	SellerID int64 = 2
)

const (
	exampleProductName  = "Pact Mechanical Keyboard"
	exampleCategory     = "electronics"
	exampleImageURL     = "https://example.pact/products/keyboard.png"
	exampleProductPrice = 12900
	exampleProductStock = 5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ProductSeed is the stable catalog fixture shared by both pact sides.
type ProductSeed struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
	Images      []string
}

func ExampleProductSeed() ProductSeed {
	return ProductSeed{
		Name:        exampleProductName,
		Description: "tenkeyless, brown switches",
		Price:       exampleProductPrice,
		Stock:       exampleProductStock,
		Category:    exampleCategory,
		Images:      []string{exampleImageURL},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
