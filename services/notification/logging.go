package notification

import (
	"context"

	"tidybook/utils"

	"go.uber.org/zap"
)

// LoggingNotificationService records every notification on the structured log
// instead of delivering it. It stands in wherever the real delivery
// collaborator is not wired up (local development, tests).
type LoggingNotificationService struct{}

func (s *LoggingNotificationService) NotifyHomeowner(ctx context.Context, homeownerID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("notify homeowner",
		zap.String("homeownerID", homeownerID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}

func (s *LoggingNotificationService) NotifyHousekeeper(ctx context.Context, housekeeperID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("notify housekeeper",
		zap.String("housekeeperID", housekeeperID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
