package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tidybook/middleware"
	"tidybook/services/booking"
	"tidybook/utils"
)

var BookingService booking.BookingService

func writeBookingError(c *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		return
	}
	if strings.Contains(err.Error(), "cannot be") {
		utils.JSONError(c, http.StatusConflict, "booking operation rejected", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
}

// CreateBooking books a client directly on the housekeeper's calendar.
func CreateBooking(c *gin.Context) {
	var input booking.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.HousekeeperID = middleware.SubjectID(c)

	created, err := BookingService.Create(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func GetBooking(c *gin.Context) {
	b, err := BookingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking marks a confirmed booking cancelled; the document stays.
func CancelBooking(c *gin.Context) {
	if err := BookingService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func CompleteBooking(c *gin.Context) {
	if err := BookingService.Complete(c.Request.Context(), c.Param("id")); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// ListHousekeeperBookings returns the caller's bookings inside a date range.
func ListHousekeeperBookings(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start and end query parameters are required")
		return
	}

	bookings, err := BookingService.ListForHousekeeper(c.Request.Context(), middleware.SubjectID(c), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListClientBookings returns the authenticated homeowner's bookings.
func ListClientBookings(c *gin.Context) {
	bookings, err := BookingService.ListForClient(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
