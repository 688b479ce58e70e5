package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type AIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

var aiClient *AIClient

func InitAI(apiKey, model string) {
	aiClient = &AIClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}

	if aiClient.apiKey != "" {
		fmt.Println("✅ AI initialized with model:", model)
	} else {
		fmt.Println("⚠️  AI_API_KEY not set — trip planning will fail until configured")
	}
}

func GetAIClient() *AIClient {
	return aiClient
}

func (c *AIClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type completionRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters completionParameters `json:"parameters"`
}

type completionParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type completionResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Complete sends a single prompt to the text-generation API and returns
// the raw completion. Any non-success status or empty completion is a
// hard failure; there is no retry and no fallback itinerary.
func (c *AIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("AI API key not configured")
	}

	reqBody := completionRequest{
		Inputs: prompt,
		Parameters: completionParameters{
			MaxNewTokens:   3000,
			Temperature:    0.4,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == 503 {
		return "", fmt.Errorf("AI model is loading, please retry in a few seconds")
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (%d): %s", resp.StatusCode, string(body))
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %v", err)
	}

	if len(cr) == 0 || cr[0].GeneratedText == "" {
		return "", fmt.Errorf("empty response from AI")
	}

	return cr[0].GeneratedText, nil
}
