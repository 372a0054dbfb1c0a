package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/dto"
	"github.com/loanwise/credit-bureau-engine/service"
)

type ReportHandler struct {
	logger        *logrus.Logger
	reportService *service.ReportService
}

func NewReportHandler(logger *logrus.Logger, reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		logger:        logger,
		reportService: reportService,
	}
}

// AnalyzeReport handles POST /report/analyze. Accepts a bureau report as a
// PDF/image upload or as pre-extracted text, with an optional PDF password
// and vendor source hint.
func (h *ReportHandler) AnalyzeReport(c *gin.Context) {
	var request dto.AnalyzeReportRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to parse request", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	var profile *dto.StructuredProfile
	var err error

	if request.File != nil {
		file, openErr := request.File.Open()
		if openErr != nil {
			h.sendError(c, http.StatusBadRequest, "failed to open uploaded file", openErr)
			return
		}
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			h.sendError(c, http.StatusBadRequest, "failed to read uploaded file", readErr)
			return
		}

		h.logger.WithFields(logrus.Fields{
			"file": request.File.Filename,
			"size": len(data),
		}).Info("analyzing uploaded report")

		profile, err = h.reportService.AnalyzeUpload(request.File, data, request.Password, request.SourceHint)
	} else {
		profile, err = h.reportService.AnalyzeText(request.Text, request.SourceHint)
	}

	if err != nil {
		if errors.Is(err, dto.ErrUnrecognizedReport) {
			h.sendError(c, http.StatusUnprocessableEntity, "input is not a recognizable credit report", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "report analysis failed", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ReportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.WithError(err).Warn(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "REPORT_ANALYSIS_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
