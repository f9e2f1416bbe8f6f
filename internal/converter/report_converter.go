package converter

import (
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
)

// StockTotalsToSummary emits every blood type in reporting order, with zero
// totals for groups that have no stock rows.
func StockTotalsToSummary(totals []entity.StockTotal) []dto.StockSummaryResponse {
	byType := make(map[entity.BloodType]*dto.StockSummaryResponse, len(entity.BloodTypes))
	summary := make([]dto.StockSummaryResponse, len(entity.BloodTypes))
	for i, bloodType := range entity.BloodTypes {
		summary[i] = dto.StockSummaryResponse{BloodType: string(bloodType)}
		byType[bloodType] = &summary[i]
	}

	for _, t := range totals {
		row, ok := byType[t.BloodType]
		if !ok {
			continue
		}
		switch t.Rhesus {
		case entity.RhesusPositive:
			row.RhesusPositive += t.Total
		case entity.RhesusNegative:
			row.RhesusNegative += t.Total
		}
		row.Total = row.RhesusPositive + row.RhesusNegative
	}

	return summary
}

func TopDonorsToResponses(donors []entity.TopDonor, avatarURL URLResolver) []dto.TopDonorResponse {
	responses := make([]dto.TopDonorResponse, len(donors))
	for i, d := range donors {
		responses[i] = dto.TopDonorResponse{
			DonorID: d.DonorID,
			Name:    d.Name,
			Total:   d.Total,
		}
		if d.Avatar != nil && avatarURL != nil {
			responses[i].Avatar = avatarURL(*d.Avatar)
		}
		if d.BloodType != nil && d.Rhesus != nil {
			responses[i].BloodGroup = entity.BloodGroup{Type: *d.BloodType, Rhesus: *d.Rhesus}.String()
		}
	}
	return responses
}

func BloodStockToResponse(stock *entity.BloodStock) *dto.BloodStockResponse {
	if stock == nil {
		return nil
	}

	return &dto.BloodStockResponse{
		ID:         stock.ID,
		BloodType:  string(stock.BloodType),
		Rhesus:     string(stock.Rhesus),
		BloodGroup: stock.Group().String(),
		Quantity:   stock.Quantity,
		UpdatedAt:  stock.UpdatedAt,
	}
}

func BloodStocksToResponses(stocks []entity.BloodStock) []dto.BloodStockResponse {
	responses := make([]dto.BloodStockResponse, len(stocks))
	for i := range stocks {
		responses[i] = *BloodStockToResponse(&stocks[i])
	}
	return responses
}
