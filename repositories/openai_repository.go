package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories/httpmodels"
)

const OPENAI_DEFAULT_BASE_URL = "https://api.openai.com"

// OpenAiRepository calls the image-generation API. One successful call is one
// consumed credit; the caller owns the reservation around it.
type OpenAiRepository struct {
	config infra.OpenAiConfig
	client *http.Client
}

func NewOpenAiRepository(config infra.OpenAiConfig, client *http.Client) OpenAiRepository {
	if config.BaseUrl == "" {
		config.BaseUrl = OPENAI_DEFAULT_BASE_URL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return OpenAiRepository{
		config: config,
		client: client,
	}
}

func (repo OpenAiRepository) GenerateImage(ctx context.Context, prompt string) (models.GeneratedImage, error) {
	body, err := json.Marshal(httpmodels.HTTPImageGenerationRequest{
		Prompt: prompt,
		Size:   "256x256",
	})
	if err != nil {
		return models.GeneratedImage{}, errors.Wrap(err, "could not marshal generation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		repo.config.BaseUrl+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return models.GeneratedImage{}, err
	}
	req.Header.Set("Authorization", "Bearer "+repo.config.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := repo.client.Do(req)
	if err != nil {
		return models.GeneratedImage{}, errors.Wrap(err, "could not reach the image generation API")
	}
	defer resp.Body.Close()

	var response httpmodels.HTTPImageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.GeneratedImage{}, errors.Wrap(err, "could not decode image generation response")
	}
	if resp.StatusCode != http.StatusOK && response.Error == nil {
		return models.GeneratedImage{}, errors.Newf("image generation API returned status %d", resp.StatusCode)
	}

	return httpmodels.AdaptGeneratedImage(response)
}
