package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"testing"

	"freshtrack-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFreshnessBands(t *testing.T) {
	tests := []struct {
		name           string
		signals        FreshnessSignals
		wantScore      float64
		wantLabel      string
		wantConfidence float64
	}{
		{
			name: "all factors saturated",
			signals: FreshnessSignals{
				MeanSaturation:     255,
				SaturationVariance: 6000,
				MeanBrightness:     250,
				EdgeDensity:        0.2,
			},
			wantScore:      100,
			wantLabel:      LabelVeryFresh,
			wantConfidence: 0.8,
		},
		{
			name:           "no signal at all",
			signals:        FreshnessSignals{},
			wantScore:      0,
			wantLabel:      LabelSpoiled,
			wantConfidence: 0.7,
		},
		{
			name: "mid signals land in fresh band",
			signals: FreshnessSignals{
				MeanSaturation:     64,
				SaturationVariance: 2500,
				MeanBrightness:     100,
				EdgeDensity:        0.05,
			},
			wantScore:      50,
			wantLabel:      LabelFresh,
			wantConfidence: 0.7,
		},
		{
			name: "dull dark image is expiring soon",
			signals: FreshnessSignals{
				MeanSaturation: 64,
				MeanBrightness: 100,
			},
			wantScore:      30,
			wantLabel:      LabelExpiringSoon,
			wantConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScoreFreshness(tt.signals)
			assert.InDelta(t, tt.wantScore, res.FreshnessScore, 0.05)
			assert.Equal(t, tt.wantLabel, res.FreshnessLabel)
			assert.Equal(t, tt.wantConfidence, res.Confidence)
		})
	}
}

func TestScoreFreshnessDetails(t *testing.T) {
	res := ScoreFreshness(FreshnessSignals{
		MeanSaturation: 128,
		MeanBrightness: 100,
	})

	assert.Equal(t, 40.0, res.AnalysisDetails["saturation_score"])
	assert.Equal(t, 10.0, res.AnalysisDetails["brightness_score"])
	assert.Equal(t, 0.0, res.AnalysisDetails["texture_score"])
	assert.Equal(t, 128.0, res.AnalysisDetails["avg_saturation"])
	assert.Equal(t, 100.0, res.AnalysisDetails["avg_brightness"])
}

func TestExtractSignalsSolidColor(t *testing.T) {
	extractor := NewSignalExtractor()

	// Pure red: saturation and brightness both max out, and a uniform image
	// has no variance and no edges.
	signals, err := extractor.ExtractSignals(solidPNG(t, color.RGBA{R: 255, A: 255}, 16, 16))
	require.NoError(t, err)

	assert.InDelta(t, 255, signals.MeanSaturation, 0.01)
	assert.InDelta(t, 255, signals.MeanBrightness, 0.01)
	assert.InDelta(t, 0, signals.SaturationVariance, 0.01)
	assert.InDelta(t, 0, signals.EdgeDensity, 0.001)
}

func TestExtractSignalsRejectsGarbage(t *testing.T) {
	extractor := NewSignalExtractor()

	_, err := extractor.ExtractSignals([]byte("not an image"))
	assert.Error(t, err)
}

func TestAnalyzeFreshnessWithRealImage(t *testing.T) {
	service := NewVisionService(NewSignalExtractor())

	file := fileHeaderFromBytes(t, "red.png", solidPNG(t, color.RGBA{R: 255, A: 255}, 16, 16))
	res, err := service.AnalyzeFreshness(context.Background(), file)
	require.NoError(t, err)

	// saturation 40 + variance 0 + brightness 20 + texture 0
	assert.InDelta(t, 60, res.FreshnessScore, 0.05)
	assert.Equal(t, LabelFresh, res.FreshnessLabel)
	assert.Equal(t, 0.7, res.Confidence)
}

func TestAnalyzeFreshnessWithoutExtractor(t *testing.T) {
	service := NewVisionService(nil)

	file := fileHeaderFromBytes(t, "red.png", solidPNG(t, color.RGBA{R: 255, A: 255}, 4, 4))
	res, err := service.AnalyzeFreshness(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 75.0, res.FreshnessScore)
	assert.Equal(t, LabelFresh, res.FreshnessLabel)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Contains(t, res.AnalysisDetails, "error")
}

func TestAnalyzeFreshnessUndecodableImage(t *testing.T) {
	service := NewVisionService(NewSignalExtractor())

	file := fileHeaderFromBytes(t, "broken.png", []byte("definitely not a png"))
	res, err := service.AnalyzeFreshness(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.FreshnessScore)
	assert.Equal(t, LabelFresh, res.FreshnessLabel)
	assert.Equal(t, 0.3, res.Confidence)
	assert.Contains(t, res.AnalysisDetails, "error")
}

func TestAnalyzeFreshnessEmptyFile(t *testing.T) {
	service := NewVisionService(NewSignalExtractor())

	file := fileHeaderFromBytes(t, "empty.png", nil)
	_, err := service.AnalyzeFreshness(context.Background(), file)
	assert.ErrorIs(t, err, domain.ErrEmptyImage)
}

func TestRecognizeFoodWithoutGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	service := NewVisionService(nil)

	file := fileHeaderFromBytes(t, "red.png", solidPNG(t, color.RGBA{R: 255, A: 255}, 4, 4))
	res, err := service.RecognizeFood(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "Food Item", res.Name)
	assert.Equal(t, 0.3, res.Confidence)
	assert.Equal(t, []string{"Vegetable", "Fruit", "Dairy", "Meat", "Grain"}, res.Suggestions)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"name":"Tomato"}`, `{"name":"Tomato"}`},
		{"fenced json", "```json\n{\"name\":\"Tomato\"}\n```", `{"name":"Tomato"}`},
		{"surrounding prose", `Sure! Here it is: {"name":"Tomato"} Hope that helps.`, `{"name":"Tomato"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.in))
		})
	}
}

func solidPNG(t *testing.T, c color.RGBA, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeaderFromBytes round-trips content through a multipart form so the
// service sees a real *multipart.FileHeader.
func fileHeaderFromBytes(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
