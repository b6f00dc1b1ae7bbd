package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase/impl"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedFile is the catalog fixture format. Items and stock refer to
// categories, brands and colors by name.
type seedFile struct {
	Categories []seedNamed `koanf:"categories"`
	Brands     []seedNamed `koanf:"brands"`
	Colors     []seedColor `koanf:"colors"`
	Items      []seedItem  `koanf:"items"`
}

type seedNamed struct {
	Name  string `koanf:"name"`
	Image string `koanf:"image"`
}

type seedColor struct {
	Name string `koanf:"name"`
	Code string `koanf:"code"`
}

type seedItem struct {
	Name          string      `koanf:"name"`
	Category      string      `koanf:"category"`
	Brand         string      `koanf:"brand"`
	Price         string      `koanf:"price"`
	DiscountPrice string      `koanf:"discountPrice"`
	Description   string      `koanf:"description"`
	Details       string      `koanf:"details"`
	MainImage     string      `koanf:"mainImage"`
	Stock         []seedStock `koanf:"stock"`
}

type seedStock struct {
	Color    string `koanf:"color"`
	Quantity int    `koanf:"quantity"`
}

// seedResult counts created rows.
type seedResult struct {
	Categories, Brands, Colors, Items, StockUnits int
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog.yaml>",
		Short: "Load categories, brands, colors, items and stock from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadSeedFile(args[0])
			if err != nil {
				return err
			}

			db, logger, closeDB, err := openDatabase()
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := seedCatalog(cmd.Context(), db, logger, fixture)
			if err != nil {
				return err
			}

			printSeedResult(cmd.OutOrStdout(), result)

			return nil
		},
	}
}

func loadSeedFile(path string) (*seedFile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read seed file %s", path)
	}

	var fixture seedFile
	if err := k.UnmarshalWithConf("", &fixture, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &fixture,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "decode seed file %s", path)
	}

	return &fixture, nil
}

// seedCatalog inserts the fixture through the admin usecase so every item
// passes the same validation as the admin API.
func seedCatalog(ctx context.Context, db *gorm.DB, logger *slog.Logger, fixture *seedFile) (*seedResult, error) {
	admin := impl.NewAdminService(impl.AdminServiceParams{
		CatalogRepo: postgres.NewCatalogRepository(db),
		Logger:      logger,
	})

	result := &seedResult{}
	categories := make(map[string]uint, len(fixture.Categories))
	brands := make(map[string]uint, len(fixture.Brands))
	colors := make(map[string]uint, len(fixture.Colors))

	for _, c := range fixture.Categories {
		category := &entity.Category{Name: c.Name, Image: c.Image}
		if err := admin.CreateCategory(ctx, category); err != nil {
			return nil, errors.Wrapf(err, "category %q", c.Name)
		}
		categories[c.Name] = category.ID
		result.Categories++
	}

	for _, b := range fixture.Brands {
		brand := &entity.Brand{Name: b.Name}
		if b.Image != "" {
			brand.Image = &b.Image
		}
		if err := admin.CreateBrand(ctx, brand); err != nil {
			return nil, errors.Wrapf(err, "brand %q", b.Name)
		}
		brands[b.Name] = brand.ID
		result.Brands++
	}

	for _, c := range fixture.Colors {
		color := &entity.Color{Name: c.Name}
		if c.Code != "" {
			color.Code = &c.Code
		}
		if err := admin.CreateColor(ctx, color); err != nil {
			return nil, errors.Wrapf(err, "color %q", c.Name)
		}
		colors[c.Name] = color.ID
		result.Colors++
	}

	for _, it := range fixture.Items {
		item, err := it.toEntity(categories, brands)
		if err != nil {
			return nil, err
		}
		if err := admin.CreateItem(ctx, item); err != nil {
			return nil, errors.Wrapf(err, "item %q", it.Name)
		}
		result.Items++

		for _, s := range it.Stock {
			colorID, ok := colors[s.Color]
			if !ok {
				return nil, errors.Errorf("item %q: unknown color %q", it.Name, s.Color)
			}
			unit := &entity.StockUnit{ItemID: item.ID, ColorID: colorID, Quantity: s.Quantity}
			if err := admin.AddStock(ctx, unit); err != nil {
				return nil, errors.Wrapf(err, "item %q stock %q", it.Name, s.Color)
			}
			result.StockUnits++
		}
	}

	return result, nil
}

func (it seedItem) toEntity(categories, brands map[string]uint) (*entity.Item, error) {
	categoryID, ok := categories[it.Category]
	if !ok {
		return nil, errors.Errorf("item %q: unknown category %q", it.Name, it.Category)
	}
	brandID, ok := brands[it.Brand]
	if !ok {
		return nil, errors.Errorf("item %q: unknown brand %q", it.Name, it.Brand)
	}

	price, err := decimal.NewFromString(it.Price)
	if err != nil {
		return nil, errors.Wrapf(err, "item %q: price", it.Name)
	}

	item := &entity.Item{
		CategoryID:  categoryID,
		BrandID:     brandID,
		Name:        it.Name,
		Price:       price,
		Description: it.Description,
		Details:     it.Details,
		MainImage:   it.MainImage,
	}

	if it.DiscountPrice != "" {
		discount, err := decimal.NewFromString(it.DiscountPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "item %q: discount price", it.Name)
		}
		item.DiscountPrice = &discount
	}

	return item, nil
}

func printSeedResult(w io.Writer, r *seedResult) {
	fmt.Fprintf(w, "seeded %d categories, %d brands, %d colors, %d items, %d stock units\n",
		r.Categories, r.Brands, r.Colors, r.Items, r.StockUnits)
}
