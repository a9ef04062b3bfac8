package catalog

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles catalog management. It creates, updates and
// soft-deactivates products; it never touches stock after creation.
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

// Create creates a new product with an opening stock level.
// Product codes are unique across the catalog.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Code, req.Name, req.Category,
		valueobject.NewMoneyINR(req.Price), valueobject.NewMoneyINR(req.Cost),
		req.Stock, req.MinStock)
	if err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Product code %s is already in use", product.Code)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update updates a product's descriptive fields and prices
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Category,
		valueobject.NewMoneyINR(req.Price), valueobject.NewMoneyINR(req.Cost),
		req.MinStock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Deactivate soft-deletes a product. Its historical bill items and
// ledger entries keep their snapshots; its remaining stock can still
// be restored by bill deletion.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	s.logger.Info("product deactivated",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))
	return nil
}

// GetByID retrieves a product by id
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.DefaultFilter()
	repoFilter.Page = filter.Page
	repoFilter.PageSize = filter.PageSize
	repoFilter.Search = filter.Search
	if filter.Category != "" {
		repoFilter.Filters["category"] = filter.Category
	}
	if filter.ActiveOnly {
		repoFilter.Filters["active"] = true
	}

	products, err := s.products.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
