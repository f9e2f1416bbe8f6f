package converter

import (
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// DonorProfileToResponse expects user.Donor to be loaded
func DonorProfileToResponse(user *entity.User, avatarURL URLResolver) *dto.DonorProfileResponse {
	if user == nil || user.Donor == nil {
		return nil
	}

	response := &dto.DonorProfileResponse{
		UserResponse: *UserToResponse(user, avatarURL),
		DonorID:      user.Donor.ID,
	}
	if user.Donor.BloodType != nil {
		response.BloodType = string(*user.Donor.BloodType)
	}
	if user.Donor.Rhesus != nil {
		response.Rhesus = string(*user.Donor.Rhesus)
	}
	if group, ok := user.Donor.BloodGroup(); ok {
		response.BloodGroup = group.String()
	}
	if user.Donor.LastDonation != nil {
		date := user.Donor.LastDonation.Format(dateLayout)
		response.LastDonation = &date
	}

	return response
}

// PmiProfileToResponse expects user.PmiCenter to be loaded
func PmiProfileToResponse(user *entity.User, avatarURL URLResolver) *dto.PmiProfileResponse {
	if user == nil || user.PmiCenter == nil {
		return nil
	}

	return &dto.PmiProfileResponse{
		UserResponse: *UserToResponse(user, avatarURL),
		PmiCenterID:  user.PmiCenter.ID,
		Location:     user.PmiCenter.Location,
	}
}

// PmiCenterToSummary uses the center's operating user for name and contact when loaded
func PmiCenterToSummary(center *entity.PmiCenter) *dto.PmiCenterSummary {
	if center == nil {
		return nil
	}

	summary := &dto.PmiCenterSummary{
		ID:       center.ID,
		Location: center.Location,
	}
	if center.User != nil {
		summary.Name = center.User.Name
		summary.City = deref(center.User.City)
		summary.Phone = deref(center.User.Phone)
		summary.Address = deref(center.User.Address)
	}
	return summary
}
