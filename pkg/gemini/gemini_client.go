package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutrilog/internal/utils"
	"nutrilog/pkg/nutrition"
)

var ErrGeminiAPIFailed = errors.New("gemini API request failed")

type (
	// Client is the AI nutrient-resolution collaborator. It is best-effort
	// and unreliable by contract: responses may be malformed or partially
	// populated, and a response that cannot be parsed into a valid nutrient
	// vector is a resolution failure for that call, never a crash.
	Client interface {
		DecomposeRecipe(ctx context.Context, name, recipeContext string) ([]Ingredient, error)
		EstimateNutrients(ctx context.Context, req EstimateRequest) (nutrition.Vector, error)
	}

	Ingredient struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	EstimateRequest struct {
		Name        string
		ServingQty  float64
		ServingUnit string
		Context     string
	}

	geminiClient struct {
		httpClient *http.Client
	}
)

func NewClient() Client {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *geminiClient) DecomposeRecipe(ctx context.Context, name, recipeContext string) ([]Ingredient, error) {
	prompt := fmt.Sprintf(
		"You are a professional nutritionist. Break down the dish '%s' into its "+
			"main ingredients for a single typical portion. ",
		name,
	)
	if recipeContext != "" {
		prompt += fmt.Sprintf("Additional context about the dish: %s. ", recipeContext)
	}
	prompt += "Return a valid JSON array where each object has exactly these " +
		"fields: \"name\" (string), \"quantity\" (number), \"unit\" (one of " +
		"\"g\", \"dl\", \"pcs\"). Use realistic quantities. Do not include any " +
		"explanations or text outside of the JSON array."

	responseText, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSONArray(responseText)
	if err != nil {
		return nil, err
	}

	var ingredients []Ingredient
	if err := json.Unmarshal([]byte(jsonStr), &ingredients); err != nil {
		return nil, fmt.Errorf("invalid ingredient list: %w", err)
	}

	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" || ing.Quantity <= 0 {
			continue
		}
		if ing.Unit == "" {
			ing.Unit = "g"
		}
		out = append(out, ing)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable ingredients in response: %s", responseText)
	}
	return out, nil
}

func (g *geminiClient) EstimateNutrients(ctx context.Context, req EstimateRequest) (nutrition.Vector, error) {
	prompt := fmt.Sprintf(
		"You are a professional nutritionist. Estimate the nutrient content of "+
			"%g %s of '%s'. ",
		req.ServingQty, req.ServingUnit, req.Name,
	)
	if req.Context != "" {
		prompt += fmt.Sprintf("Context: this is an ingredient of '%s'. ", req.Context)
	}
	prompt += "Carbs means net carbohydrate, excluding fiber. Return a single " +
		"valid JSON object with these numeric fields (grams, use 0 when " +
		"negligible): protein, fat, carbs, fibers, sugar, mufa, pufa, sfa, " +
		"glycemic_load, omega3, omega6. Do not include calories. Do not " +
		"include any text outside of the JSON object."

	responseText, err := g.generate(ctx, prompt)
	if err != nil {
		return nutrition.Vector{}, err
	}

	return ParseVector(responseText)
}

// ParseVector extracts and validates a nutrient vector from a model
// response. Unknown fields are ignored; negative values reject the whole
// response; a vector with no usable values at all is a failure.
func ParseVector(responseText string) (nutrition.Vector, error) {
	jsonStr, err := extractJSONObject(responseText)
	if err != nil {
		return nutrition.Vector{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nutrition.Vector{}, fmt.Errorf("invalid nutrient response: %w", err)
	}

	var v nutrition.Vector
	populated := false
	for _, n := range nutrition.StoredNutrients {
		msg, ok := raw[string(n)]
		if !ok {
			continue
		}
		var value float64
		// Tolerate numbers delivered as strings; skip anything else.
		if err := json.Unmarshal(msg, &value); err != nil {
			var s string
			if err := json.Unmarshal(msg, &s); err != nil {
				continue
			}
			if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &value); err != nil {
				continue
			}
		}
		if value < 0 {
			return nutrition.Vector{}, fmt.Errorf("negative value for %s in nutrient response", n)
		}
		setField(&v, n, value)
		populated = true
	}
	if !populated {
		return nutrition.Vector{}, fmt.Errorf("no nutrient fields in response: %s", responseText)
	}
	return v, nil
}

func setField(v *nutrition.Vector, n nutrition.Nutrient, value float64) {
	switch n {
	case nutrition.Protein:
		v.Protein = value
	case nutrition.Fat:
		v.Fat = value
	case nutrition.Carbs:
		v.Carbs = value
	case nutrition.Fibers:
		v.Fibers = value
	case nutrition.Sugar:
		v.Sugar = value
	case nutrition.Mufa:
		v.Mufa = value
	case nutrition.Pufa:
		v.Pufa = value
	case nutrition.Sfa:
		v.Sfa = value
	case nutrition.GlycemicLoad:
		v.GlycemicLoad = value
	case nutrition.Omega3:
		v.Omega3 = value
	case nutrition.Omega6:
		v.Omega6 = value
	}
}

func (g *geminiClient) generate(ctx context.Context, prompt string) (string, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return "", fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.2,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrGeminiAPIFailed
	}

	return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}

func extractJSONArray(responseText string) (string, error) {
	startIdx := strings.Index(responseText, "[")
	endIdx := strings.LastIndex(responseText, "]")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return "", fmt.Errorf("invalid response format: %s", responseText)
	}
	return responseText[startIdx : endIdx+1], nil
}

func extractJSONObject(responseText string) (string, error) {
	startIdx := strings.Index(responseText, "{")
	endIdx := strings.LastIndex(responseText, "}")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return "", fmt.Errorf("invalid response format: %s", responseText)
	}
	return responseText[startIdx : endIdx+1], nil
}
