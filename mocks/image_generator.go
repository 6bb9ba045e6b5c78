package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
)

type ImageGenerator struct {
	mock.Mock
}

func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (models.GeneratedImage, error) {
	args := g.Called(prompt)
	return args.Get(0).(models.GeneratedImage), args.Error(1)
}
