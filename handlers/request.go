package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tidybook/middleware"
	"tidybook/models"
	"tidybook/services/request"
	"tidybook/utils"
)

var RequestService request.RequestService

// writeRequestError maps service errors to status codes: illegal lifecycle
// transitions are a conflict, validation failures a bad request.
func writeRequestError(c *gin.Context, err error) {
	var transitionErr *request.TransitionError
	if errors.As(err, &transitionErr) {
		utils.JSONError(c, http.StatusConflict, "illegal transition", err.Error())
		return
	}
	var validationErr *request.ValidationError
	if errors.As(err, &validationErr) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if strings.Contains(err.Error(), "not found") {
		utils.JSONError(c, http.StatusNotFound, "request not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "request operation failed", err.Error())
}

// SubmitRequest creates a new service request from the authenticated homeowner.
func SubmitRequest(c *gin.Context) {
	var input request.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.HomeownerID = middleware.SubjectID(c)
	input.HomeownerName = middleware.SubjectName(c)

	req, err := RequestService.Submit(c.Request.Context(), input)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func GetRequest(c *gin.Context) {
	req, err := RequestService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListHousekeeperRequests returns the caller's incoming requests, optionally
// filtered by comma-separated statuses.
func ListHousekeeperRequests(c *gin.Context) {
	var statuses []models.RequestStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.RequestStatus(strings.TrimSpace(s)))
		}
	}

	reqs, err := RequestService.ListForHousekeeper(c.Request.Context(), middleware.SubjectID(c), statuses)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func ListHomeownerRequests(c *gin.Context) {
	reqs, err := RequestService.ListForHomeowner(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// ProposeAlternative attaches the housekeeper's counter-offer to a pending request.
func ProposeAlternative(c *gin.Context) {
	var proposal models.RequestProposal
	if err := c.ShouldBindJSON(&proposal); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := RequestService.ProposeAlternative(c.Request.Context(), c.Param("id"), proposal)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ConfirmRequest approves a pending request as asked.
func ConfirmRequest(c *gin.Context) {
	req, err := RequestService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeclineRequest is the housekeeper's terminal rejection.
func DeclineRequest(c *gin.Context) {
	var input struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := RequestService.DeclineByHousekeeper(c.Request.Context(), c.Param("id"), input.Note)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// AcceptProposal accepts the housekeeper's counter-offer, emitting the booking.
func AcceptProposal(c *gin.Context) {
	req, booking, err := RequestService.AcceptProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req, "booking": booking})
}

// DeclineProposal is the homeowner's terminal rejection of the counter-offer.
func DeclineProposal(c *gin.Context) {
	var input struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := RequestService.DeclineProposal(c.Request.Context(), c.Param("id"), input.Note)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func CancelRequestByHomeowner(c *gin.Context) {
	req, err := RequestService.CancelByHomeowner(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func CancelRequestByHousekeeper(c *gin.Context) {
	req, err := RequestService.CancelByHousekeeper(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func CompleteRequest(c *gin.Context) {
	req, err := RequestService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRequestError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
