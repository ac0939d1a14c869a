package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"slip-print/pkg/models"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
	"github.com/disintegration/imaging"
)

// ErrNotConfigured is returned when no Computer Vision endpoint is set.
var ErrNotConfigured = errors.New("ocr service not configured")

// Service reads back printed forms through Azure Computer Vision
type Service struct {
	client *computervision.BaseClient
}

// NewService creates a new OCR service. It returns nil when endpoint or key is empty.
func NewService(endpoint, apiKey string) *Service {
	if endpoint == "" || apiKey == "" {
		return nil
	}
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &Service{client: &client}
}

// EnhanceScan prepares a scanned form for OCR and returns it as PNG.
// Scans are kept at their size so pixel positions still map to the page.
func EnhanceScan(r io.Reader) ([]byte, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode scan: %w", err)
	}

	// Dot-matrix ribbons print faint; push contrast before sharpening.
	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode scan: %w", err)
	}
	return buf.Bytes(), nil
}

// ExtractText performs OCR on a scan and returns the text lines with their words
func (s *Service) ExtractText(ctx context.Context, r io.Reader) ([]models.TextLine, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}
	processed, err := EnhanceScan(r)
	if err != nil {
		return nil, err
	}

	result, err := s.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(bytes.NewReader(processed)),
		computervision.OcrLanguages("es"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	return extractTextFromOCRResult(result), nil
}

// extractTextFromOCRResult flattens regions into lines, keeping word boxes
func extractTextFromOCRResult(result computervision.OcrResult) []models.TextLine {
	var textLines []models.TextLine
	if result.Regions == nil {
		return nil
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			box, ok := parseBoundingBox(line.BoundingBox)
			if !ok {
				continue
			}
			tl := models.TextLine{X: box[0], Y: box[1], Width: box[2], Height: box[3]}

			var lineText strings.Builder
			if line.Words != nil {
				for _, word := range *line.Words {
					if word.Text == nil {
						continue
					}
					lineText.WriteString(*word.Text)
					lineText.WriteString(" ")
					if wb, ok := parseBoundingBox(word.BoundingBox); ok {
						tl.Words = append(tl.Words, models.TextLine{
							Text: *word.Text, X: wb[0], Y: wb[1], Width: wb[2], Height: wb[3],
						})
					}
				}
			}
			tl.Text = strings.TrimSpace(lineText.String())
			textLines = append(textLines, tl)
		}
	}
	return textLines
}

// parseBoundingBox reads "left,top,width,height"
func parseBoundingBox(s *string) ([4]int, bool) {
	var box [4]int
	if s == nil {
		return box, false
	}
	parts := strings.Split(*s, ",")
	if len(parts) < 4 {
		return box, false
	}
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return box, false
		}
		box[i] = v
	}
	return box, true
}
