package service

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/loanwise/credit-bureau-engine/client"
	"github.com/loanwise/credit-bureau-engine/dto"
)

// A text-based PDF yields far more than this; anything under it is treated
// as a scanned report and sent through OCR.
const minEmbeddedTextLen = 40

// ReportService handles report ingestion: PDF decryption and text
// extraction with an OCR fallback for scanned documents, then the
// extraction pipeline.
type ReportService struct {
	logger       *logrus.Logger
	pdfProcessor PDFProcessor
	ocrClient    *client.TesseractClient
	extraction   *ExtractionService
}

func NewReportService(
	logger *logrus.Logger,
	pdfProcessor PDFProcessor,
	ocrClient *client.TesseractClient,
	extraction *ExtractionService,
) *ReportService {
	return &ReportService{
		logger:       logger,
		pdfProcessor: pdfProcessor,
		ocrClient:    ocrClient,
		extraction:   extraction,
	}
}

// AnalyzeText runs the extraction pipeline over already-extracted text.
func (s *ReportService) AnalyzeText(text, sourceHint string) (*dto.StructuredProfile, error) {
	return s.extraction.Extract(text, sourceHint)
}

// AnalyzeUpload ingests an uploaded report document. PDFs go through text
// extraction first and fall back to page-image OCR when the embedded text
// is too thin; image uploads go straight to OCR.
func (s *ReportService) AnalyzeUpload(fileHeader *multipart.FileHeader, data []byte, password, sourceHint string) (*dto.StructuredProfile, error) {
	var text string

	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		extracted, err := s.pdfProcessor.ExtractText(data, password)
		if err != nil {
			s.logger.WithError(err).WithField("file", fileHeader.Filename).Warn("pdf text extraction failed")
		} else {
			text = extracted
		}

		if len(strings.TrimSpace(text)) < minEmbeddedTextLen {
			s.logger.WithField("file", fileHeader.Filename).Info("report appears scanned, running OCR")
			ocrText, err := s.ocrPages(data, password)
			if err != nil {
				s.logger.WithError(err).Warn("OCR fallback failed")
			} else if len(strings.TrimSpace(ocrText)) > len(strings.TrimSpace(text)) {
				text = ocrText
			}
		}
	} else {
		ocrText, confidence, err := s.ocrClient.ExtractTextAndQualityFromFile(fileHeader)
		if err != nil {
			return nil, fmt.Errorf("image OCR failed: %w", err)
		}
		s.logger.WithField("ocr_confidence", confidence).Debug("image OCR complete")
		text = ocrText
	}

	if strings.TrimSpace(text) == "" {
		return nil, dto.ErrUnrecognizedReport
	}

	return s.extraction.Extract(text, sourceHint)
}

func (s *ReportService) ocrPages(pdfData []byte, password string) (string, error) {
	images, err := s.pdfProcessor.ExtractImages(pdfData, password)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no page images found in pdf")
	}

	var combined strings.Builder
	for i, img := range images {
		pageText, confidence, err := s.ocrClient.ExtractTextFromImage(img)
		if err != nil {
			s.logger.WithError(err).WithField("page", i).Warn("page OCR failed")
			continue
		}
		s.logger.WithFields(logrus.Fields{"page": i, "ocr_confidence": confidence}).Debug("page OCR complete")
		combined.WriteString(pageText)
		if i < len(images)-1 {
			combined.WriteString("\f")
		}
	}
	return combined.String(), nil
}
