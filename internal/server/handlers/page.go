package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/rain-prediction-app/internal/features"
	"github.com/vzahanych/rain-prediction-app/internal/server/utils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "index.tmpl"

// Form actions, one per button on the page.
const (
	ActionPredict     = "predict"
	ActionFeatures    = "features"
	ActionExplanation = "explanation"
)

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"num": formatFloat}).
		ParseFS(templateFS, "templates/*.tmpl"))
}

// formatFloat prints v the way Python's str(float) does: 4.0, 0.0001, 1e-05,
// 1e+16.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Field is one numeric input of the form.
type Field struct {
	Name  string
	Value string
}

// PageData feeds templates/index.tmpl.
type PageData struct {
	Title       string
	Fields      []Field
	Panel       string
	Glossary    []features.Entry
	Explanation features.Explanation
	Predicted   bool
	Prediction  float64
	Error       string
	Input       []features.Value
}

func newPageData() PageData {
	return PageData{
		Title:       "Rain Prediction",
		Glossary:    features.Glossary(),
		Explanation: features.Explain(),
	}
}

// formFields reads every feature input back from the submitted form. Inputs
// that are absent or blank are left out of the vector; inputs that do not
// parse as numbers are reported by name.
func formFields(c *gin.Context) ([]Field, map[string]float64, []string) {
	fields := make([]Field, 0, features.Count)
	values := make(map[string]float64, features.Count)
	var invalid []string

	for _, name := range features.Names() {
		raw, ok := c.GetPostForm(name)
		raw = strings.TrimSpace(raw)
		fields = append(fields, Field{Name: name, Value: raw})
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, name)
			continue
		}
		values[name] = v
	}
	return fields, values, invalid
}

// Page renders the form on GET and handles the three form buttons on POST.
// A fresh page shows every input at 0.0; ?panel=features or
// ?panel=explanation opens that panel.
func (h *PredictHandler) Page(c *gin.Context) {
	data := newPageData()

	if c.Request.Method == http.MethodGet {
		for _, name := range features.Names() {
			data.Fields = append(data.Fields, Field{Name: name, Value: "0.0"})
		}
		data.Input = features.Zero().Rows()
		switch panel := c.Query("panel"); panel {
		case ActionFeatures, ActionExplanation:
			data.Panel = panel
		}
		c.HTML(http.StatusOK, pageTemplate, data)
		return
	}

	fields, values, invalid := formFields(c)
	data.Fields = fields
	data.Input = features.Vector(values).Rows()

	action := c.PostForm("action")
	switch action {
	case ActionFeatures, ActionExplanation:
		data.Panel = action
		c.HTML(http.StatusOK, pageTemplate, data)
		return
	case ActionPredict:
	default:
		data.Error = fmt.Sprintf("unknown action %q", action)
		c.HTML(http.StatusBadRequest, pageTemplate, data)
		return
	}

	if len(invalid) > 0 {
		data.Error = "Not a number: " + strings.Join(invalid, ", ")
		c.HTML(http.StatusBadRequest, pageTemplate, data)
		return
	}

	req := PredictRequest{Features: values}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		data.Error = utils.Summary(errs)
		c.HTML(http.StatusBadRequest, pageTemplate, data)
		return
	}

	if !h.ready() {
		h.logger.Warn("Form prediction without a model",
			zap.String("request_id", utils.GetRequestIDFromGinContext(c)))
		data.Error = modelUnavailable
		c.HTML(http.StatusServiceUnavailable, pageTemplate, data)
		return
	}

	result, err := h.predictor.Predict(utils.GetContextFromGinContext(c), h.vector(values))
	if err != nil {
		status, resp := h.errorResponse(c, err)
		h.logger.Warn("Form prediction rejected",
			zap.String("request_id", utils.GetRequestIDFromGinContext(c)),
			zap.String("code", resp.Code))
		data.Error = resp.Details
		c.HTML(status, pageTemplate, data)
		return
	}

	data.Predicted = true
	data.Prediction = result.Value
	data.Input = result.Input
	c.HTML(http.StatusOK, pageTemplate, data)
}
