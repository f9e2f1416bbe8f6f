package converter

import (
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
)

// AuditLogsToResponses lifts the entity reference out of the metadata so
// clients can link an entry without parsing it.
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i, log := range logs {
		entityName, _ := log.Metadata["entity"].(string)
		entityID, _ := log.Metadata["entity_id"].(string)
		responses[i] = dto.AuditLogResponse{
			ID:        log.ID,
			Action:    log.Action,
			Entity:    entityName,
			EntityID:  entityID,
			Metadata:  log.Metadata,
			CreatedAt: log.CreatedAt,
		}
	}
	return responses
}
