package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/stock"
	"github.com/jhoicas/Autoelectrica-api/pkg/search"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
// El update reemplaza el registro completo, incluida la cantidad en stock;
// los cambios de stock derivados de pedidos siguen siendo exclusivos del
// reconciliador.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El código debe ser único (insensible a mayúsculas).
func (uc *ProductUseCase) Create(in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Price:       in.Price,
		StockQty:    in.StockQty,
		MinAlert:    in.MinAlert,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda opcional por nombre o código
// (insensible a mayúsculas y tildes).
func (uc *ProductUseCase) List(term string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(search.Normalize(term), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Update reemplaza el producto completo. Si el código cambia, la unicidad se
// verifica contra el resto del catálogo.
func (uc *ProductUseCase) Update(id int64, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if other, err := uc.repo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}

	product.Name = in.Name
	product.Code = in.Code
	product.Description = in.Description
	product.Price = in.Price
	product.StockQty = in.StockQty
	product.MinAlert = in.MinAlert
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Si tiene movimientos asociados el repositorio
// devuelve ErrConflict: el rastro de auditoría no se rompe.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func validateProduct(in dto.SaveProductRequest) error {
	if in.Name == "" || in.Code == "" {
		return domain.ErrInvalidInput
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.StockQty < 0 || in.MinAlert < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		Price:       p.Price,
		StockQty:    p.StockQty,
		MinAlert:    p.MinAlert,
		LowStock:    stock.IsLow(p),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
