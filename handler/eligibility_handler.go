package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/dto"
	"github.com/loanwise/credit-bureau-engine/service"
)

type EligibilityHandler struct {
	logger             *logrus.Logger
	reportService      *service.ReportService
	eligibilityService *service.EligibilityService
}

func NewEligibilityHandler(
	logger *logrus.Logger,
	reportService *service.ReportService,
	eligibilityService *service.EligibilityService,
) *EligibilityHandler {
	return &EligibilityHandler{
		logger:             logger,
		reportService:      reportService,
		eligibilityService: eligibilityService,
	}
}

// EvaluateEligibility handles POST /eligibility/evaluate. Takes a previously
// extracted profile (or raw report text to extract inline), the customer
// profile, and the loan request, and returns ranked per-lender results.
func (h *EligibilityHandler) EvaluateEligibility(c *gin.Context) {
	var request dto.EvaluateEligibilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to parse request", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	profile := request.Profile
	if profile == nil {
		extracted, err := h.reportService.AnalyzeText(request.ReportText, request.SourceHint)
		if err != nil {
			if errors.Is(err, dto.ErrUnrecognizedReport) {
				h.sendError(c, http.StatusUnprocessableEntity, "report text is not a recognizable credit report", err)
				return
			}
			h.sendError(c, http.StatusInternalServerError, "report extraction failed", err)
			return
		}
		profile = extracted
	}

	report, err := h.eligibilityService.Evaluate(profile, request.Customer, request.Loan)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrMissingSalary):
			h.sendError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, dto.ErrNoActivePolicies):
			h.sendError(c, http.StatusServiceUnavailable, err.Error(), err)
		default:
			h.sendError(c, http.StatusInternalServerError, "eligibility evaluation failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *EligibilityHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.WithError(err).Warn(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ELIGIBILITY_EVALUATION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
