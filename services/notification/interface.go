package notification

import "context"

// NotificationService is the boundary to the external delivery system. The
// core only decides when someone should hear about something; how the message
// reaches them (push, email) is not this service's business.
type NotificationService interface {
	NotifyHomeowner(ctx context.Context, homeownerID, title, body string, data map[string]string) error
	NotifyHousekeeper(ctx context.Context, housekeeperID, title, body string, data map[string]string) error
}
