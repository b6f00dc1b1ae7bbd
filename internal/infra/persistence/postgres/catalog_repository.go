// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// catalogRepository implements the repository.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

type stockCountRow struct {
	GroupID uint
	Total   int64
}

// ListCategories returns every category with the summed stock of its items.
func (repo *catalogRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	counts, err := repo.stockCountsBy(ctx, "items.category_id")
	if err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		category := toCategoryDomain(categoryM)
		category.StockCount = counts[category.ID]
		categories = append(categories, category)
	}

	return categories, nil
}

// ListBrands returns every brand with the summed stock of its items.
func (repo *catalogRepository) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	var brandModels []*model.BrandModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&brandModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	counts, err := repo.stockCountsBy(ctx, "items.brand_id")
	if err != nil {
		return nil, err
	}

	brands := make([]*entity.Brand, 0, len(brandModels))
	for _, brandM := range brandModels {
		brand := toBrandDomain(brandM)
		brand.StockCount = counts[brand.ID]
		brands = append(brands, brand)
	}

	return brands, nil
}

// stockCountsBy sums stock_units.quantity grouped by an items column.
func (repo *catalogRepository) stockCountsBy(ctx context.Context, column string) (map[uint]int64, error) {
	var rows []stockCountRow
	if err := repo.db.WithContext(ctx).
		Table("stock_units").
		Select(column + " AS group_id, COALESCE(SUM(stock_units.quantity), 0) AS total").
		Joins("JOIN items ON items.id = stock_units.item_id").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate stock counts")
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}

	return counts, nil
}

// FindCategoryByID retrieves a category by its ID.
func (repo *catalogRepository) FindCategoryByID(ctx context.Context, id uint) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindBrandByID retrieves a brand by its ID.
func (repo *catalogRepository) FindBrandByID(ctx context.Context, id uint) (*entity.Brand, error) {
	var brandM model.BrandModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&brandM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBrandNotFound
		}

		return nil, errors.Wrap(err, "failed to find brand by ID")
	}

	return toBrandDomain(&brandM), nil
}

// FindColorByID retrieves a color by its ID.
func (repo *catalogRepository) FindColorByID(ctx context.Context, id uint) (*entity.Color, error) {
	var colorM model.ColorModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&colorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrColorNotFound
		}

		return nil, errors.Wrap(err, "failed to find color by ID")
	}

	return toColorDomain(&colorM), nil
}

// StockCountByCategory sums the stock of every item in the category.
func (repo *catalogRepository) StockCountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return repo.stockCountWhere(ctx, "items.category_id = ?", categoryID)
}

// StockCountByBrand sums the stock of every item of the brand.
func (repo *catalogRepository) StockCountByBrand(ctx context.Context, brandID uint) (int64, error) {
	return repo.stockCountWhere(ctx, "items.brand_id = ?", brandID)
}

func (repo *catalogRepository) stockCountWhere(ctx context.Context, cond string, id uint) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Table("stock_units").
		Select("COALESCE(SUM(stock_units.quantity), 0)").
		Joins("JOIN items ON items.id = stock_units.item_id").
		Where(cond, id).
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum stock")
	}

	return total, nil
}

// ListItems returns all items ordered by ID.
func (repo *catalogRepository) ListItems(ctx context.Context) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return toItemsDomain(itemModels), nil
}

// FindItems applies the listing filter and returns one page plus the total match count.
func (repo *catalogRepository) FindItems(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ItemModel{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
	if filter.PriceMin != nil {
		query = query.Where("price > ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.BrandIDs) > 0 {
		query = query.Where("brand_id IN ?", filter.BrandIDs)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count items")
	}

	page := query.Order("id ASC").Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}

	var itemModels []*model.ItemModel
	if err := page.Find(&itemModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to find items")
	}

	return toItemsDomain(itemModels), total, nil
}

// FindItemByID retrieves an item by its ID.
func (repo *catalogRepository) FindItemByID(ctx context.Context, id uint) (*entity.Item, error) {
	var itemM model.ItemModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// ListItemsByCategory returns the category's items other than excludeID.
func (repo *catalogRepository) ListItemsByCategory(ctx context.Context, categoryID, excludeID uint) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel
	if err := repo.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items by category")
	}

	return toItemsDomain(itemModels), nil
}

// ListItemImages returns the extra images of an item.
func (repo *catalogRepository) ListItemImages(ctx context.Context, itemID uint) ([]*entity.ItemImage, error) {
	var imageModels []*model.ItemImageModel
	if err := repo.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&imageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list item images")
	}

	images := make([]*entity.ItemImage, 0, len(imageModels))
	for _, imageM := range imageModels {
		images = append(images, toItemImageDomain(imageM))
	}

	return images, nil
}

// ListStockUnits returns the stock units of an item with their colors.
func (repo *catalogRepository) ListStockUnits(ctx context.Context, itemID uint) ([]*entity.StockUnit, error) {
	var unitModels []*model.StockUnitModel
	if err := repo.db.WithContext(ctx).
		Preload("Color").
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&unitModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stock units")
	}

	units := make([]*entity.StockUnit, 0, len(unitModels))
	for _, unitM := range unitModels {
		units = append(units, toStockUnitDomain(unitM))
	}

	return units, nil
}

// FindStockUnitByID retrieves a stock unit with its item and color.
func (repo *catalogRepository) FindStockUnitByID(ctx context.Context, id uint) (*entity.StockUnit, error) {
	var unitM model.StockUnitModel
	if err := repo.db.WithContext(ctx).
		Preload("Item").
		Preload("Color").
		Where("id = ?", id).
		First(&unitM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStockUnitNotFound
		}

		return nil, errors.Wrap(err, "failed to find stock unit by ID")
	}

	return toStockUnitDomain(&unitM), nil
}

// FindFirstAvailableStockUnit returns the lowest-id unit of the item that still has stock.
func (repo *catalogRepository) FindFirstAvailableStockUnit(ctx context.Context, itemID uint) (*entity.StockUnit, error) {
	var unitM model.StockUnitModel
	if err := repo.db.WithContext(ctx).
		Preload("Item").
		Preload("Color").
		Where("item_id = ? AND quantity > 0", itemID).
		Order("id ASC").
		First(&unitM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoAvailableStock
		}

		return nil, errors.Wrap(err, "failed to find available stock unit")
	}

	return toStockUnitDomain(&unitM), nil
}

// DecrementStock subtracts amount in one conditional UPDATE.
func (repo *catalogRepository) DecrementStock(ctx context.Context, stockUnitID uint, amount int, allowNegative bool) error {
	query := repo.db.WithContext(ctx).
		Model(&model.StockUnitModel{}).
		Where("id = ?", stockUnitID)
	if !allowNegative {
		query = query.Where("quantity >= ?", amount)
	}

	result := query.Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.StockUnitModel{}).
			Where("id = ?", stockUnitID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check stock unit")
		}
		if count == 0 {
			return repository.ErrStockUnitNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// CreateCategory persists a new category.
func (repo *catalogRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return translateWriteError(err, "failed to create category")
	}
	category.ID = categoryM.ID

	return nil
}

// CreateBrand persists a new brand.
func (repo *catalogRepository) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	brandM := fromBrandDomain(brand)
	if err := repo.db.WithContext(ctx).Create(brandM).Error; err != nil {
		return translateWriteError(err, "failed to create brand")
	}
	brand.ID = brandM.ID

	return nil
}

// CreateColor persists a new color.
func (repo *catalogRepository) CreateColor(ctx context.Context, color *entity.Color) error {
	colorM := fromColorDomain(color)
	if err := repo.db.WithContext(ctx).Create(colorM).Error; err != nil {
		return translateWriteError(err, "failed to create color")
	}
	color.ID = colorM.ID

	return nil
}

// CreateItem persists a new item.
func (repo *catalogRepository) CreateItem(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return translateWriteError(err, "failed to create item")
	}
	item.ID = itemM.ID
	item.DateAdded = itemM.DateAdded

	return nil
}

// CreateItemImage attaches an image to an item.
func (repo *catalogRepository) CreateItemImage(ctx context.Context, image *entity.ItemImage) error {
	imageM := &model.ItemImageModel{ItemID: image.ItemID, Image: image.Image}
	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		return translateWriteError(err, "failed to create item image")
	}
	image.ID = imageM.ID

	return nil
}

// CreateStockUnit persists a stock unit; (item, color) is unique.
func (repo *catalogRepository) CreateStockUnit(ctx context.Context, unit *entity.StockUnit) error {
	unitM := &model.StockUnitModel{ItemID: unit.ItemID, ColorID: unit.ColorID, Quantity: unit.Quantity}
	if err := repo.db.WithContext(ctx).Create(unitM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateStockUnit
		}

		return translateWriteError(err, "failed to create stock unit")
	}
	unit.ID = unitM.ID

	return nil
}

// DeleteCategory removes a category. Dependent rows go with it through ON DELETE CASCADE.
func (repo *catalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CategoryModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:    data.ID,
		Name:  data.Name,
		Image: data.Image,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:    data.ID,
		Name:  data.Name,
		Image: data.Image,
	}
}

func toBrandDomain(data *model.BrandModel) *entity.Brand {
	return &entity.Brand{
		ID:    data.ID,
		Name:  data.Name,
		Image: data.Image,
	}
}

func fromBrandDomain(data *entity.Brand) *model.BrandModel {
	return &model.BrandModel{
		ID:    data.ID,
		Name:  data.Name,
		Image: data.Image,
	}
}

func toColorDomain(data *model.ColorModel) *entity.Color {
	return &entity.Color{
		ID:   data.ID,
		Name: data.Name,
		Code: data.Code,
	}
}

func fromColorDomain(data *entity.Color) *model.ColorModel {
	return &model.ColorModel{
		ID:   data.ID,
		Name: data.Name,
		Code: data.Code,
	}
}

func toItemDomain(data *model.ItemModel) *entity.Item {
	return &entity.Item{
		ID:            data.ID,
		CategoryID:    data.CategoryID,
		BrandID:       data.BrandID,
		Name:          data.Name,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
		Description:   data.Description,
		Details:       data.Details,
		MainImage:     data.MainImage,
		DateAdded:     data.DateAdded,
	}
}

func toItemsDomain(data []*model.ItemModel) []*entity.Item {
	items := make([]*entity.Item, 0, len(data))
	for _, itemM := range data {
		items = append(items, toItemDomain(itemM))
	}

	return items
}

func fromItemDomain(data *entity.Item) *model.ItemModel {
	return &model.ItemModel{
		ID:            data.ID,
		CategoryID:    data.CategoryID,
		BrandID:       data.BrandID,
		Name:          data.Name,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
		Description:   data.Description,
		Details:       data.Details,
		MainImage:     data.MainImage,
		DateAdded:     data.DateAdded,
	}
}

func toItemImageDomain(data *model.ItemImageModel) *entity.ItemImage {
	return &entity.ItemImage{
		ID:     data.ID,
		ItemID: data.ItemID,
		Image:  data.Image,
	}
}

// toStockUnitDomain maps a unit and whichever associations were preloaded.
func toStockUnitDomain(data *model.StockUnitModel) *entity.StockUnit {
	if data == nil {
		return nil
	}

	unit := &entity.StockUnit{
		ID:       data.ID,
		ItemID:   data.ItemID,
		ColorID:  data.ColorID,
		Quantity: data.Quantity,
	}
	if data.Item != nil {
		unit.Item = toItemDomain(data.Item)
	}
	if data.Color != nil {
		unit.Color = toColorDomain(data.Color)
	}

	return unit
}
