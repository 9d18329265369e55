package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
)

// recordAudit appends an audit trail entry, logging rather than failing
// the surrounding operation on error.
func recordAudit(ctx context.Context, audit auditRecorder, logger *zap.Logger, userID *string, dept models.Department, action, resource, resourceID string, values map[string]interface{}, ip, userAgent string) {
	if audit == nil {
		return
	}
	payload, err := json.Marshal(values)
	if err != nil {
		payload = nil
	}
	if err := audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     userID,
		Department: dept,
		Action:     action,
		Resource:   resource,
		ResourceID: &resourceID,
		NewValues:  payload,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}); err != nil {
		logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
