package converter

import (
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
)

func DonorScheduleToResponse(schedule *entity.DonorSchedule) *dto.DonorScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.DonorScheduleResponse{
		ID:        schedule.ID,
		Date:      schedule.Date.Format(dateLayout),
		Time:      schedule.ClockTime(),
		Location:  schedule.Location,
		PmiCenter: PmiCenterToSummary(schedule.PmiCenter),
	}
}

func DonorSchedulesToResponses(schedules []entity.DonorSchedule) []dto.DonorScheduleResponse {
	responses := make([]dto.DonorScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *DonorScheduleToResponse(&schedules[i])
	}
	return responses
}
