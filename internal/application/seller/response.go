package seller

import (
	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// ToApplicationResponse convierte la entidad en DTO.
func ToApplicationResponse(a *entity.SellerApplication) *dto.SellerApplicationResponse {
	if a == nil {
		return nil
	}
	return &dto.SellerApplicationResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		CompanyName:    a.CompanyName,
		TaxID:          a.TaxID,
		Description:    a.Description,
		Status:         string(a.Status),
		CommissionRate: a.CommissionRate,
		CreatedAt:      a.CreatedAt,
		ApprovedAt:     a.ApprovedAt,
	}
}

// ToApplicationListResponse convierte un listado conservando el orden.
func ToApplicationListResponse(list []*entity.SellerApplication) *dto.SellerApplicationListResponse {
	out := &dto.SellerApplicationListResponse{Items: make([]dto.SellerApplicationResponse, 0, len(list))}
	for _, a := range list {
		out.Items = append(out.Items, *ToApplicationResponse(a))
	}
	return out
}
