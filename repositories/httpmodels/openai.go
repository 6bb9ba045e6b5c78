package httpmodels

import (
	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/models"
)

type HTTPImageGenerationRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n,omitempty"`
	Size   string `json:"size"`
}

type HTTPImageGenerationResponse struct {
	Data []struct {
		Url string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func AdaptGeneratedImage(dto HTTPImageGenerationResponse) (models.GeneratedImage, error) {
	if dto.Error != nil {
		return models.GeneratedImage{}, errors.Newf("image generation failed: %s", dto.Error.Message)
	}
	if len(dto.Data) == 0 {
		return models.GeneratedImage{}, errors.New("image generation returned no image")
	}
	return models.GeneratedImage{Url: dto.Data[0].Url}, nil
}
