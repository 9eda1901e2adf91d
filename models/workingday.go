package models

// Weekday keys used in the schedule settings document, Monday first.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// WeekdayKeys lists the seven weekday keys in week order (Monday first).
var WeekdayKeys = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WorkingDayTemplate describes one weekday of a housekeeper's weekly schedule.
// When IsWorking is false all other fields are zero. When true, JobDurations has
// exactly JobsPerDay entries and BreakDurations has JobsPerDay-1.
type WorkingDayTemplate struct {
	IsWorking      bool   `bson:"isWorking" json:"isWorking"`
	JobsPerDay     int    `bson:"jobsPerDay,omitempty" json:"jobsPerDay,omitempty"`         // 1-3 when working
	StartTime      string `bson:"startTime,omitempty" json:"startTime,omitempty"`           // housekeeper-local, e.g. "8:00 AM"
	JobDurations   []int  `bson:"jobDurations,omitempty" json:"jobDurations,omitempty"`     // minutes per job
	BreakDurations []int  `bson:"breakDurations,omitempty" json:"breakDurations,omitempty"` // minutes between consecutive jobs
}

// ScheduleSettings is the persisted settings document for a housekeeper's schedule.
type ScheduleSettings struct {
	HousekeeperID    string                        `bson:"housekeeperId" json:"housekeeperId"`
	WorkingDays      map[string]WorkingDayTemplate `bson:"workingDays" json:"workingDays"` // keyed monday..sunday
	AutoSendReceipts bool                          `bson:"autoSendReceipts" json:"autoSendReceipts"`
	Timezone         string                        `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA zone, e.g. "America/Los_Angeles"
}
