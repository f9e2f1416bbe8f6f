package converter

import (
	"time"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/service"
)

func DonationToResponse(donation *entity.Donation) *dto.DonationResponse {
	if donation == nil {
		return nil
	}

	return &dto.DonationResponse{
		ID:              donation.ID,
		DonorID:         donation.DonorID,
		DonorScheduleID: donation.DonorScheduleID,
		PmiCenterID:     donation.PmiCenterID,
		Status:          string(donation.Status),
		CreatedAt:       donation.CreatedAt,
		UpdatedAt:       donation.UpdatedAt,
	}
}

// DonationToHistory renders a donation for the given viewer. Donors see the
// center as counterpart, centers see the donor. Walk-in donations have no
// schedule, so date and time fall back to the creation time and location to
// the center's address.
func DonationToHistory(donation *entity.Donation, viewer entity.Role, loc *time.Location, avatarURL URLResolver) dto.HistoryResponse {
	history := dto.HistoryResponse{
		ID:        donation.ID,
		DonorID:   donation.DonorID,
		Status:    string(donation.Status),
		IsWalkIn:  donation.IsWalkIn(),
		UpdatedAt: donation.UpdatedAt,
	}

	if schedule := donation.DonorSchedule; schedule != nil {
		history.Date = schedule.Date.Format(dateLayout)
		history.Time = schedule.ClockTime()
		history.Location = schedule.Location
	} else {
		created := donation.CreatedAt.In(loc)
		history.Date = created.Format(dateLayout)
		history.Time = created.Format("15:04")
	}

	var centerUser *entity.User
	if donation.PmiCenter != nil {
		centerUser = donation.PmiCenter.User
		if history.Location == "" {
			history.Location = donation.PmiCenter.Location
		}
	}
	if history.Location == "" && centerUser != nil {
		history.Location = deref(centerUser.Address)
	}

	if donation.Donor != nil {
		if group, ok := donation.Donor.BloodGroup(); ok {
			history.BloodGroup = group.String()
		}
	}

	counterpart := centerUser
	if viewer == entity.RolePmi && donation.Donor != nil {
		counterpart = donation.Donor.User
	}
	if counterpart != nil {
		history.Name = counterpart.Name
		history.Phone = deref(counterpart.Phone)
		history.Email = counterpart.Email
		if counterpart.Avatar != nil && avatarURL != nil {
			history.Avatar = avatarURL(*counterpart.Avatar)
		}
	}

	return history
}

func DonationsToHistories(donations []entity.Donation, viewer entity.Role, loc *time.Location, avatarURL URLResolver) []dto.HistoryResponse {
	responses := make([]dto.HistoryResponse, len(donations))
	for i := range donations {
		responses[i] = DonationToHistory(&donations[i], viewer, loc, avatarURL)
	}
	return responses
}

func DonationToHistoryDetail(donation *entity.Donation, viewer entity.Role, loc *time.Location, avatarURL URLResolver) *dto.HistoryDetailResponse {
	if donation == nil {
		return nil
	}

	return &dto.HistoryDetailResponse{
		HistoryResponse: DonationToHistory(donation, viewer, loc, avatarURL),
		Physical:        PhysicalToResponse(donation.Physical),
	}
}

func PhysicalToResponse(physical *entity.Physical) *dto.PhysicalResponse {
	if physical == nil {
		return nil
	}

	return &dto.PhysicalResponse{
		Systolic:    physical.Systolic,
		Diastolic:   physical.Diastolic,
		Pulse:       physical.Pulse,
		Weight:      physical.Weight,
		Temperature: physical.Temperature,
		Hemoglobin:  physical.Hemoglobin,
	}
}

// HistoriesToExportRows flattens rendered histories for the spreadsheet export
func HistoriesToExportRows(histories []dto.HistoryResponse) []service.HistoryExportRow {
	rows := make([]service.HistoryExportRow, len(histories))
	for i, h := range histories {
		rows[i] = service.HistoryExportRow{
			Date:       h.Date,
			Time:       h.Time,
			Location:   h.Location,
			Name:       h.Name,
			Email:      h.Email,
			Phone:      h.Phone,
			BloodGroup: h.BloodGroup,
			Status:     h.Status,
		}
	}
	return rows
}
