package inventory

import (
	"context"

	"gymdesk/internal/apperr"
	"gymdesk/internal/db"
	"gymdesk/internal/gym"
	"gymdesk/internal/logger"
	"gymdesk/internal/money"
	"gymdesk/internal/xid"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	labelSize       = 256
	barcodeAttempts = 3
)

type Service interface {
	CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, id int) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int) error

	CreateProduct(ctx context.Context, branch gym.Branch, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int, branch gym.Branch, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context, search string) ([]Product, error)
	ListLowStock(ctx context.Context, branch gym.Branch) ([]Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ProductLabel(ctx context.Context, id int) ([]byte, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	c, err := s.repo.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return nil, apperr.Wrap("create category", err)
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*Category, error) {
	if err := apperr.ValidateStruct(req); err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateCategory(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, apperr.Wrap("update category", err)
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id int) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get category", err)
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Wrap("list categories", err)
	}
	return categories, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int) error {
	err := s.repo.DeleteCategory(ctx, id)
	if db.IsForeignKeyViolation(err) {
		return &apperr.ReferentialIntegrityError{Entity: "category", ID: id}
	}
	if err != nil {
		return apperr.Wrap("delete category", err)
	}
	return nil
}

// CreateProduct stocks the new product in branch only. A barcode is generated
// when none is given.
func (s *service) CreateProduct(ctx context.Context, branch gym.Branch, req ProductRequest) (*Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	if !branch.Valid() {
		return nil, invalidBranch(branch)
	}

	generated := req.Barcode == ""
	for attempt := 1; ; attempt++ {
		barcode := req.Barcode
		if generated {
			barcode = xid.Barcode()
		}

		p := productFromRequest(req, barcode)
		p.Stock.Adjust(branch, req.Quantity)

		created, err := s.repo.CreateProduct(ctx, p)
		if generated && db.IsUniqueViolation(err) && attempt < barcodeAttempts {
			logger.Info("generated barcode collision, retrying", "barcode", barcode, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, classifyWrite("create product", err)
		}

		logger.Info("product created", "product_id", created.ID, "barcode", barcode, "branch", branch)
		return created, nil
	}
}

// UpdateProduct keeps the stored barcode when the request leaves it empty.
func (s *service) UpdateProduct(ctx context.Context, id int, branch gym.Branch, req ProductRequest) (*Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	if !branch.Valid() {
		return nil, invalidBranch(branch)
	}

	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("update product", err)
	}

	barcode := req.Barcode
	if barcode == "" && existing.Barcode != nil {
		barcode = *existing.Barcode
	}

	p := productFromRequest(req, barcode)
	p.ID = id
	p.Stock = existing.Stock
	// The edit form carries the counted quantity; it replaces the branch stock.
	p.Stock.Adjust(branch, req.Quantity-existing.Stock.Of(branch))

	updated, err := s.repo.UpdateProduct(ctx, p, branch)
	if err != nil {
		return nil, classifyWrite("update product", err)
	}
	return updated, nil
}

func (s *service) GetProduct(ctx context.Context, id int) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get product", err)
	}
	return p, nil
}

func (s *service) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	if barcode == "" {
		return nil, apperr.Invalid("barcode", "is required")
	}

	p, err := s.repo.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, apperr.Wrap("get product by barcode", err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, search string) ([]Product, error) {
	products, err := s.repo.ListProducts(ctx, search)
	if err != nil {
		return nil, apperr.Wrap("list products", err)
	}
	return products, nil
}

func (s *service) ListLowStock(ctx context.Context, branch gym.Branch) ([]Product, error) {
	if !branch.Valid() {
		return nil, invalidBranch(branch)
	}

	products, err := s.repo.ListLowStock(ctx, branch)
	if err != nil {
		return nil, apperr.Wrap("list low stock", err)
	}
	return products, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int) error {
	err := s.repo.DeleteProduct(ctx, id)
	if db.IsForeignKeyViolation(err) {
		return &apperr.ReferentialIntegrityError{Entity: "product", ID: id}
	}
	if err != nil {
		return apperr.Wrap("delete product", err)
	}

	logger.Info("product deleted", "product_id", id)
	return nil
}

// ProductLabel renders the product's barcode as a QR code PNG.
func (s *service) ProductLabel(ctx context.Context, id int) ([]byte, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Barcode == nil || *p.Barcode == "" {
		return nil, apperr.Invalid("barcode", "product has no barcode")
	}

	png, err := qrcode.Encode(*p.Barcode, qrcode.Medium, labelSize)
	if err != nil {
		return nil, apperr.Wrap("encode product label", err)
	}
	return png, nil
}

func validateProduct(req ProductRequest) error {
	if err := apperr.ValidateStruct(req); err != nil {
		return err
	}
	if money.IsNegative(req.PurchasePrice) {
		return apperr.Invalid("purchase_price", "must not be negative")
	}
	if money.IsNegative(req.SalePrice) {
		return apperr.Invalid("sale_price", "must not be negative")
	}
	return nil
}

func productFromRequest(req ProductRequest, barcode string) *Product {
	return &Product{
		Barcode:       &barcode,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		PurchasePrice: money.Round(req.PurchasePrice),
		SalePrice:     money.Round(req.SalePrice),
		ImagePath:     req.ImagePath,
		Notes:         req.Notes,
	}
}

func classifyWrite(op string, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return apperr.Invalid("barcode", "already in use")
	case db.IsForeignKeyViolation(err):
		return apperr.Invalid("category_id", "category not found")
	}
	return apperr.Wrap(op, err)
}
