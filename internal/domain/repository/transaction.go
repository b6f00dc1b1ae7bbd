package repository

import "context"

// TransactionManager runs a unit of work atomically. Checkout uses it so
// that stock claims, order rows and cart clearing commit together.
type TransactionManager interface {
	// Execute passes fn repositories bound to one transaction. A non-nil
	// error from fn rolls everything back and is returned as is.
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory is the set of repositories available inside Execute.
type RepositoryFactory interface {
	CatalogRepo() CatalogRepository
	ReviewRepo() ReviewRepository
	CartRepo() CartRepository
	WishlistRepo() WishlistRepository
	OrderRepo() OrderRepository
}
