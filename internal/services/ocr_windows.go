//go:build windows

package services

import (
	"errors"
)

var errOCRUnavailable = errors.New("stock-take scanning needs tesseract, which this build does not link on Windows")

// OCRService is unavailable on Windows builds
type OCRService struct{}

// OCRResult contains the OCR processing result
type OCRResult struct {
	Text  string
	Lines int
}

// NewOCRService always fails on Windows
func NewOCRService() (*OCRService, error) {
	return nil, errOCRUnavailable
}

func (s *OCRService) ProcessImage(imageBytes []byte) (*OCRResult, error) {
	return nil, errOCRUnavailable
}

func (s *OCRService) Close() error {
	return nil
}
