package layout

import "math"

// TwipsPerInch is the addressing resolution of MM_TWIPS graphics mode.
const TwipsPerInch = 1440

// TwipsPerCm converts centimeters to twips.
const TwipsPerCm = TwipsPerInch / 2.54

// CmToTwips converts a length in centimeters to whole twips, rounding half away from zero.
func CmToTwips(cm float64) int {
	return int(math.Round(cm * TwipsPerCm))
}

// TwipsToPoints converts twips to PDF points (1/72 inch).
func TwipsToPoints(twips int) float64 {
	return float64(twips) / 20
}

// TwipsToPixels converts twips to device pixels at the given resolution.
func TwipsToPixels(twips int, dpi float64) int {
	return int(math.Round(float64(twips) * dpi / TwipsPerInch))
}

// PixelsToCm converts a pixel distance on a scan at dpi back to centimeters.
func PixelsToCm(px int, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return float64(px) / dpi * 2.54
}
