package postgres

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every storefront table, including the cascading
// foreign keys and the partial unique index on active cart lines.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
