package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/dbtest"
	"storefront/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
categories:
  - name: Shoes
    image: categories/shoes.png
brands:
  - name: Acme
colors:
  - name: Red
    code: "#ff0000"
  - name: Blue
items:
  - name: Runner
    category: Shoes
    brand: Acme
    price: "10.00"
    discountPrice: "8.00"
    mainImage: items/runner.png
    stock:
      - color: Red
        quantity: 5
      - color: Blue
        quantity: 0
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestSeedCatalog(t *testing.T) {
	fixture, err := loadSeedFile(writeSeedFile(t, catalogYAML))
	require.NoError(t, err)
	require.Len(t, fixture.Items, 1)
	assert.Equal(t, "8.00", fixture.Items[0].DiscountPrice)

	db := dbtest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	result, err := seedCatalog(context.Background(), db, logger, fixture)
	require.NoError(t, err)
	assert.Equal(t, &seedResult{Categories: 1, Brands: 1, Colors: 2, Items: 1, StockUnits: 2}, result)

	var items []model.ItemModel
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "10", items[0].Price.String())
	require.NotNil(t, items[0].DiscountPrice)
	assert.Equal(t, "8", items[0].DiscountPrice.String())

	out := &bytes.Buffer{}
	printSeedResult(out, result)
	assert.Equal(t, "seeded 1 categories, 1 brands, 2 colors, 1 items, 2 stock units\n", out.String())
}

func TestSeedCatalog_SampleFile(t *testing.T) {
	fixture, err := loadSeedFile(filepath.Join("..", "..", "..", "config", "catalog.sample.yaml"))
	require.NoError(t, err)

	result, err := seedCatalog(context.Background(), dbtest.New(t), slog.New(slog.NewTextHandler(io.Discard, nil)), fixture)
	require.NoError(t, err)
	assert.Equal(t, &seedResult{Categories: 2, Brands: 2, Colors: 3, Items: 3, StockUnits: 4}, result)
}

func TestSeedCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown category",
			yaml:    "brands: [{name: Acme}]\nitems: [{name: X, category: Hats, brand: Acme, price: '1'}]\n",
			wantErr: `unknown category "Hats"`,
		},
		{
			name:    "unknown color",
			yaml:    "categories: [{name: C}]\nbrands: [{name: B}]\nitems: [{name: X, category: C, brand: B, price: '1', stock: [{color: Pink, quantity: 1}]}]\n",
			wantErr: `unknown color "Pink"`,
		},
		{
			name:    "discount not below price",
			yaml:    "categories: [{name: C}]\nbrands: [{name: B}]\nitems: [{name: X, category: C, brand: B, price: '5', discountPrice: '5'}]\n",
			wantErr: `item "X"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture, err := loadSeedFile(writeSeedFile(t, tt.yaml))
			require.NoError(t, err)

			_, err = seedCatalog(context.Background(), dbtest.New(t), slog.New(slog.NewTextHandler(io.Discard, nil)), fixture)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSeedFile_RejectsUnknownKeys(t *testing.T) {
	_, err := loadSeedFile(writeSeedFile(t, "categorys: [{name: C}]\n"))
	require.Error(t, err)
}

func TestHashKeyCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "from argument", args: []string{"hash-key", "s3cret"}},
		{name: "from stdin", args: []string{"hash-key"}, stdin: "s3cret\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand()
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetIn(strings.NewReader(tt.stdin))
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())

			hash := strings.TrimSpace(out.String())
			assert.True(t, auth.NewBcryptHasher().Check("s3cret", hash))
		})
	}

	t.Run("empty key", func(t *testing.T) {
		cmd := NewRootCommand()
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetIn(strings.NewReader("\n"))
		cmd.SetArgs([]string{"hash-key"})

		require.Error(t, cmd.Execute())
	})
}
