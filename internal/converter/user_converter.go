package converter

import (
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
)

// URLResolver turns a stored blob key into a public URL.
type URLResolver func(key string) string

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User, avatarURL URLResolver) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role.String(),
		Phone:     deref(user.Phone),
		City:      deref(user.City),
		Address:   deref(user.Address),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Avatar != nil && avatarURL != nil {
		response.Avatar = avatarURL(*user.Avatar)
	}

	return response
}
