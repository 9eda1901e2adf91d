package models

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Target    string `json:"target"` // "homeowner" or "housekeeper"
	TargetID  string `json:"targetId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
