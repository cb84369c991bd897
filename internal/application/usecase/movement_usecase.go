package usecase

import (
	"github.com/jhoicas/Autoelectrica-api/internal/application/dto"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/repository"
)

// MovementUseCase consultas sobre el rastro de auditoría de stock. Los
// movimientos los crea únicamente el reconciliador; este módulo no expone
// escritura alguna.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// List lista movimientos con filtro opcional por producto.
func (uc *MovementUseCase) List(productID *int64, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{Items: make([]dto.MovementResponse, 0, len(list))}
	for _, m := range list {
		out.Items = append(out.Items, toMovementResponse(m))
	}
	out.Total = len(out.Items)
	return out, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		OrderID:   m.OrderID,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}
