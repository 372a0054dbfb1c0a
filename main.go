package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/client"
	"github.com/loanwise/credit-bureau-engine/config"
	"github.com/loanwise/credit-bureau-engine/handler"
	"github.com/loanwise/credit-bureau-engine/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	policies, err := config.LoadPolicies(cfg.PolicyFile)
	if err != nil {
		logger.Fatalf("failed to load lender policies: %v", err)
	}
	logger.Infof("loaded %d lender policies from %s", len(policies), cfg.PolicyFile)

	ocrClient := client.NewTesseractClient(cfg.TesseractDataPath)
	pdfProcessor := service.NewPDFProcessor()

	obligationCalculator := service.NewObligationCalculator()
	extractionService := service.NewExtractionService(logger, obligationCalculator)
	reportService := service.NewReportService(logger, pdfProcessor, ocrClient, extractionService)
	eligibilityService := service.NewEligibilityService(logger, policies)

	reportHandler := handler.NewReportHandler(logger, reportService)
	eligibilityHandler := handler.NewEligibilityHandler(logger, reportService, eligibilityService)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Credit Bureau Engine",
		})
	})

	api := router.Group("/api/v1")
	{
		report := api.Group("/report")
		{
			report.POST("/analyze", reportHandler.AnalyzeReport)
		}
		eligibility := api.Group("/eligibility")
		{
			eligibility.POST("/evaluate", eligibilityHandler.EvaluateEligibility)
		}
	}

	logger.Infof("starting credit bureau engine on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
