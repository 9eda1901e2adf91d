package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	settingsRepo "tidybook/database/repository/settings"
	"tidybook/middleware"
	"tidybook/models"
	"tidybook/services/schedule"
	"tidybook/utils"
)

var (
	DraftService        *schedule.DraftService
	AvailabilityService schedule.AvailabilityService
	SettingsRepo        settingsRepo.SettingsRepository
)

// GetAvailability returns the slot map for a housekeeper over a date range.
func GetAvailability(c *gin.Context) {
	housekeeperID := c.Param("id")
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start and end query parameters are required")
		return
	}

	slots, err := AvailabilityService.GetSlots(c.Request.Context(), housekeeperID, start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetScheduleDraft returns the caller's working copy of their schedule,
// creating one from the persisted settings if needed.
func GetScheduleDraft(c *gin.Context) {
	draft, err := DraftService.GetDraft(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load schedule draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetWorkingDay toggles whether a weekday is a working day on the draft.
func SetWorkingDay(c *gin.Context) {
	var input struct {
		Working bool `json:"working"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := DraftService.SetWorking(c.Request.Context(), middleware.SubjectID(c), c.Param("day"), input.Working)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update working day", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetJobCount resizes a weekday's job count on the draft.
func SetJobCount(c *gin.Context) {
	var input struct {
		JobsPerDay int `json:"jobsPerDay"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := DraftService.SetJobCount(c.Request.Context(), middleware.SubjectID(c), c.Param("day"), input.JobsPerDay)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update job count", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetStartTime updates a weekday's first-job start time on the draft.
func SetStartTime(c *gin.Context) {
	var input struct {
		StartTime string `json:"startTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := DraftService.SetStartTime(c.Request.Context(), middleware.SubjectID(c), c.Param("day"), input.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update start time", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetSchedulePreferences updates the receipts flag and timezone on the draft.
func SetSchedulePreferences(c *gin.Context) {
	var input struct {
		AutoSendReceipts bool   `json:"autoSendReceipts"`
		Timezone         string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	draft, err := DraftService.SetPreferences(c.Request.Context(), middleware.SubjectID(c), input.AutoSendReceipts, input.Timezone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update preferences", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveSchedule persists the draft in one batch, optionally carrying a profile
// update in the same transaction, and invalidates cached availability.
func SaveSchedule(c *gin.Context) {
	var input struct {
		Profile *models.HousekeeperProfile `json:"profile"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	housekeeperID := middleware.SubjectID(c)
	if input.Profile != nil {
		input.Profile.ID = housekeeperID
	}
	saved, err := DraftService.Save(c.Request.Context(), housekeeperID, input.Profile)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save schedule", err.Error())
		return
	}
	invalidateAvailability(c, housekeeperID)
	c.JSON(http.StatusOK, saved)
}

// DiscardSchedule drops the draft without persisting anything.
func DiscardSchedule(c *gin.Context) {
	if err := DraftService.Discard(c.Request.Context(), middleware.SubjectID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to discard schedule draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "discarded"})
}

// AddTimeOff marks a whole date as unavailable.
func AddTimeOff(c *gin.Context) {
	var input struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if _, err := utils.ParseCalendarDate(input.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	housekeeperID := middleware.SubjectID(c)
	exception := &models.TimeOffException{
		ID:            uuid.New().String(),
		HousekeeperID: housekeeperID,
		Date:          input.Date,
		CreatedAt:     time.Now(),
	}
	if err := SettingsRepo.AddTimeOff(exception); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to add time off", err.Error())
		return
	}
	invalidateAvailability(c, housekeeperID)
	c.JSON(http.StatusOK, exception)
}

// RemoveTimeOff clears a time-off date, restoring the weekday template.
func RemoveTimeOff(c *gin.Context) {
	housekeeperID := middleware.SubjectID(c)
	date := c.Param("date")
	if _, err := utils.ParseCalendarDate(date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	if err := SettingsRepo.RemoveTimeOff(housekeeperID, date); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove time off", err.Error())
		return
	}
	invalidateAvailability(c, housekeeperID)
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListTimeOff returns the caller's time-off dates inside a range.
func ListTimeOff(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start and end query parameters are required")
		return
	}

	exceptions, err := SettingsRepo.ListTimeOff(middleware.SubjectID(c), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list time off", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeOff": exceptions})
}

func invalidateAvailability(c *gin.Context, housekeeperID string) {
	if AvailabilityService == nil {
		return
	}
	if err := AvailabilityService.Invalidate(c.Request.Context(), housekeeperID); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache: " + err.Error())
	}
}
