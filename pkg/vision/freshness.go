package vision

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"freshtrack-backend/domain"
)

// FreshnessSignals are the four image-derived measurements the scorer
// consumes. Saturation and brightness are on the 0-255 scale, edge density
// is a fraction of pixels.
type FreshnessSignals struct {
	MeanSaturation     float64
	SaturationVariance float64
	MeanBrightness     float64
	EdgeDensity        float64
}

const (
	LabelVeryFresh    = "Very Fresh"
	LabelFresh        = "Fresh"
	LabelExpiringSoon = "Expiring Soon"
	LabelSpoiled      = "Spoiled"
)

// ScoreFreshness turns the raw signals into a 0-100 composite. Each factor
// is clamped to its own ceiling before summing:
//   - saturation: vibrant color reads as fresh, up to 40 points
//   - saturation variance: uniform discoloration loses points, up to 20
//   - brightness: very dark images read as spoiled, up to 20
//   - edge density: surface texture reads as fresh, up to 20
func ScoreFreshness(signals FreshnessSignals) domain.FreshnessResponse {
	saturationScore := clamp01(signals.MeanSaturation/128.0) * 40
	varianceScore := clamp01(signals.SaturationVariance/5000.0) * 20
	brightnessScore := clamp01(signals.MeanBrightness/200.0) * 20
	textureScore := clamp01(signals.EdgeDensity*10) * 20

	score := saturationScore + varianceScore + brightnessScore + textureScore
	score = math.Max(0.0, math.Min(100.0, score))

	var label string
	var confidence float64
	switch {
	case score >= 75:
		label, confidence = LabelVeryFresh, 0.8
	case score >= 50:
		label, confidence = LabelFresh, 0.7
	case score >= 25:
		label, confidence = LabelExpiringSoon, 0.6
	default:
		label, confidence = LabelSpoiled, 0.7
	}

	return domain.FreshnessResponse{
		FreshnessScore: round1(score),
		FreshnessLabel: label,
		Confidence:     confidence,
		AnalysisDetails: map[string]interface{}{
			"saturation_score": round2(saturationScore),
			"variance_score":   round2(varianceScore),
			"brightness_score": round2(brightnessScore),
			"texture_score":    round2(textureScore),
			"avg_saturation":   round2(signals.MeanSaturation),
			"avg_brightness":   round2(signals.MeanBrightness),
		},
	}
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SignalExtractor turns raw image bytes into FreshnessSignals. It sits
// behind an interface so an absent extractor can be told apart from a
// failing one.
type SignalExtractor interface {
	ExtractSignals(imageBytes []byte) (FreshnessSignals, error)
}

type imageSignalExtractor struct {
	// edgeThreshold is the Sobel gradient magnitude above which a pixel
	// counts as an edge.
	edgeThreshold float64
}

func NewSignalExtractor() SignalExtractor {
	return &imageSignalExtractor{edgeThreshold: 100}
}

func (e *imageSignalExtractor) ExtractSignals(imageBytes []byte) (FreshnessSignals, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return FreshnessSignals{}, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	total := float64(width * height)

	saturation := make([]float64, 0, width*height)
	gray := make([]float64, width*height)
	var satSum, valSum float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)

			s, v := rgbToSV(r, g, b)
			saturation = append(saturation, s)
			satSum += s
			valSum += v

			gray[(y-bounds.Min.Y)*width+(x-bounds.Min.X)] = 0.299*r + 0.587*g + 0.114*b
		}
	}

	meanSat := satSum / total
	var varSum float64
	for _, s := range saturation {
		diff := s - meanSat
		varSum += diff * diff
	}

	return FreshnessSignals{
		MeanSaturation:     meanSat,
		SaturationVariance: varSum / total,
		MeanBrightness:     valSum / total,
		EdgeDensity:        e.edgeDensity(gray, width, height),
	}, nil
}

// rgbToSV converts one RGB pixel to the S and V channels of HSV, both on
// the 0-255 scale.
func rgbToSV(r, g, b float64) (s, v float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max
	if max > 0 {
		s = (max - min) / max * 255
	}
	return s, v
}

// edgeDensity runs a Sobel operator over the grayscale plane and returns
// the fraction of pixels whose gradient magnitude crosses the threshold.
func (e *imageSignalExtractor) edgeDensity(gray []float64, width, height int) float64 {
	if width < 3 || height < 3 {
		return 0
	}

	edges := 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := -gray[(y-1)*width+x-1] + gray[(y-1)*width+x+1] +
				-2*gray[y*width+x-1] + 2*gray[y*width+x+1] +
				-gray[(y+1)*width+x-1] + gray[(y+1)*width+x+1]
			gy := -gray[(y-1)*width+x-1] - 2*gray[(y-1)*width+x] - gray[(y-1)*width+x+1] +
				gray[(y+1)*width+x-1] + 2*gray[(y+1)*width+x] + gray[(y+1)*width+x+1]

			if math.Hypot(gx, gy) > e.edgeThreshold {
				edges++
			}
		}
	}

	return float64(edges) / float64(width*height)
}
