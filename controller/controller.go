package controller

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/polyglotkit/polyglot/detect"
	"github.com/polyglotkit/polyglot/text"
)

var logger = logrus.New()

type Controller struct {
	detector   *detect.Detector
	normalizer text.Normalizer
}

// NewController wraps a built detector. The normalizer is optional; when
// nil, input texts are passed to the engine untouched.
func NewController(detector *detect.Detector, normalizer text.Normalizer) *Controller {
	return &Controller{detector: detector, normalizer: normalizer}
}

// Close releases the detector's model data.
func (c *Controller) Close() error {
	c.detector.UnloadLanguageModels()
	logger.Info("Controller resources closed successfully")
	return nil
}

func handleGenericError(echoCtx echo.Context, err error, status int) error {
	logger.WithError(err).WithField("status", status).Error("Error handling request")
	return echoCtx.JSON(status, map[string]string{"status": err.Error()})
}

func handleInternalError(echoCtx echo.Context, err error) error {
	return handleGenericError(echoCtx, err, http.StatusInternalServerError)
}

// handleDetectError maps the detect error taxonomy to HTTP status codes.
func handleDetectError(echoCtx echo.Context, err error) error {
	switch {
	case errors.Is(err, detect.ErrInvalidArgument):
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	case errors.Is(err, detect.ErrBuilderConsumed):
		return handleGenericError(echoCtx, err, http.StatusConflict)
	default:
		return handleInternalError(echoCtx, err)
	}
}

func (c *Controller) normalize(input string) string {
	if c.normalizer == nil {
		return input
	}
	normalized, err := c.normalizer.Normalize(input)
	if err != nil {
		logger.WithError(err).Error("Failed to normalize text, using raw input")
		return input
	}
	return normalized
}

func (c *Controller) normalizeAll(inputs []string) []string {
	if c.normalizer == nil {
		return inputs
	}
	return lo.Map(inputs, func(item string, _ int) string {
		return c.normalize(item)
	})
}

// languageName renders a detected language for JSON, nil when undetermined.
func languageName(language lingua.Language, ok bool) *string {
	if !ok || language == lingua.Unknown {
		return nil
	}
	name := language.String()
	return &name
}

type TextParams struct {
	Text string `json:"text"`
}

type TextsParams struct {
	Texts []string `json:"texts"`
}

type TextWithLanguageParams struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TextsWithLanguageParams struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
}

type SpanItem struct {
	Language string `json:"language" jsonschema:"the language attributed to the span"`
	Start    int    `json:"start" jsonschema:"start offset of the span in characters"`
	End      int    `json:"end" jsonschema:"end offset of the span in characters"`
}

type ConfidenceItem struct {
	Language   string  `json:"language" jsonschema:"the candidate language"`
	Confidence float64 `json:"confidence" jsonschema:"normalized confidence between 0.0 and 1.0"`
}

func spanItems(spans []detect.Span) []SpanItem {
	return lo.Map(spans, func(span detect.Span, _ int) SpanItem {
		return SpanItem{Language: span.Language.String(), Start: span.Start, End: span.End}
	})
}

func confidenceItems(values []detect.ConfidenceValue) []ConfidenceItem {
	return lo.Map(values, func(value detect.ConfidenceValue, _ int) ConfidenceItem {
		return ConfidenceItem{Language: value.Language.String(), Confidence: value.Confidence}
	})
}

// ListLanguages returns sorted canonical language names, optionally
// filtered by the "filter" query parameter.
func (c *Controller) ListLanguages(echoCtx echo.Context) error {
	filter := echoCtx.QueryParam("filter")
	var names []string
	switch filter {
	case "", "all":
		names = detect.Languages()
	case "spoken":
		names = detect.SpokenLanguages()
	case "arabic":
		names = detect.LanguagesWithArabicScript()
	case "cyrillic":
		names = detect.LanguagesWithCyrillicScript()
	case "devanagari":
		names = detect.LanguagesWithDevanagariScript()
	case "latin":
		names = detect.LanguagesWithLatinScript()
	case "unique":
		names = detect.LanguagesWithSingleUniqueScript()
	default:
		return handleGenericError(echoCtx, echo.NewHTTPError(http.StatusBadRequest, "unknown language filter: "+filter), http.StatusBadRequest)
	}
	return echoCtx.JSON(http.StatusOK, map[string][]string{"languages": names})
}

// DetectLanguage returns the most likely language of one text, null when
// the detector cannot commit to an answer.
func (c *Controller) DetectLanguage(echoCtx echo.Context) error {
	param := TextParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	language, ok := c.detector.DetectLanguage(c.normalize(param.Text))
	return echoCtx.JSON(http.StatusOK, map[string]*string{"language": languageName(language, ok)})
}

// DetectLanguages runs single-language detection over a batch of texts,
// preserving input order in the response.
func (c *Controller) DetectLanguages(echoCtx echo.Context) error {
	param := TextsParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	batchId := uuid.NewString()
	logger.WithField("batch_id", batchId).WithField("texts", len(param.Texts)).Debug("Detecting languages in parallel")
	languages := c.detector.DetectLanguagesInParallel(c.normalizeAll(param.Texts))
	names := lo.Map(languages, func(language lingua.Language, _ int) *string {
		return languageName(language, true)
	})
	return echoCtx.JSON(http.StatusOK, map[string]any{"batch_id": batchId, "languages": names})
}

// DetectMultipleLanguages splits one mixed-language text into spans.
func (c *Controller) DetectMultipleLanguages(echoCtx echo.Context) error {
	param := TextParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	spans := c.detector.DetectMultipleLanguages(c.normalize(param.Text))
	return echoCtx.JSON(http.StatusOK, map[string][]SpanItem{"spans": spanItems(spans)})
}

// DetectMultipleLanguagesBatch is the batch form of span detection.
func (c *Controller) DetectMultipleLanguagesBatch(echoCtx echo.Context) error {
	param := TextsParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	batchId := uuid.NewString()
	logger.WithField("batch_id", batchId).WithField("texts", len(param.Texts)).Debug("Detecting mixed languages in parallel")
	results := c.detector.DetectMultipleLanguagesInParallel(c.normalizeAll(param.Texts))
	items := lo.Map(results, func(spans []detect.Span, _ int) []SpanItem {
		return spanItems(spans)
	})
	return echoCtx.JSON(http.StatusOK, map[string]any{"batch_id": batchId, "results": items})
}

// LanguageConfidenceValues returns one confidence entry per configured
// language, ranked by descending confidence.
func (c *Controller) LanguageConfidenceValues(echoCtx echo.Context) error {
	param := TextParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	values := c.detector.ComputeLanguageConfidenceValues(c.normalize(param.Text))
	return echoCtx.JSON(http.StatusOK, map[string][]ConfidenceItem{"values": confidenceItems(values)})
}

// LanguageConfidenceValuesBatch is the batch form of confidence ranking.
func (c *Controller) LanguageConfidenceValuesBatch(echoCtx echo.Context) error {
	param := TextsParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	batchId := uuid.NewString()
	logger.WithField("batch_id", batchId).WithField("texts", len(param.Texts)).Debug("Computing confidence values in parallel")
	results := c.detector.ComputeLanguageConfidenceValuesInParallel(c.normalizeAll(param.Texts))
	items := lo.Map(results, func(values []detect.ConfidenceValue, _ int) []ConfidenceItem {
		return confidenceItems(values)
	})
	return echoCtx.JSON(http.StatusOK, map[string]any{"batch_id": batchId, "results": items})
}

// LanguageConfidence scores one text against one named language.
func (c *Controller) LanguageConfidence(echoCtx echo.Context) error {
	param := TextWithLanguageParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	confidence, err := c.detector.ComputeLanguageConfidence(c.normalize(param.Text), param.Language)
	if err != nil {
		return handleDetectError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, map[string]any{"language": param.Language, "confidence": confidence})
}

// LanguageConfidenceBatch scores a batch of texts against one language.
func (c *Controller) LanguageConfidenceBatch(echoCtx echo.Context) error {
	param := TextsWithLanguageParams{}
	if err := echoCtx.Bind(&param); err != nil {
		return handleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	batchId := uuid.NewString()
	logger.WithField("batch_id", batchId).WithField("texts", len(param.Texts)).Debug("Computing confidence in parallel")
	confidences, err := c.detector.ComputeLanguageConfidenceInParallel(c.normalizeAll(param.Texts), param.Language)
	if err != nil {
		return handleDetectError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, map[string]any{"batch_id": batchId, "confidences": confidences})
}

// UnloadModels releases model data held by the detector.
func (c *Controller) UnloadModels(echoCtx echo.Context) error {
	c.detector.UnloadLanguageModels()
	logger.Info("Language models unloaded")
	return echoCtx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
