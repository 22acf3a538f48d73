package moderation

import (
	"bytes"
	"context"
	"strings"
)

// FakeClassifier flags text containing configured phrases and images
// containing configured byte patterns, for tests.
type FakeClassifier struct {
	flaggedPhrases map[string]string
	flaggedImages  map[string][]byte
}

func NewFakeClassifier() *FakeClassifier {
	return &FakeClassifier{
		flaggedPhrases: map[string]string{},
		flaggedImages:  map[string][]byte{},
	}
}

// FlagPhrase makes any text containing phrase classify as category.
func (c *FakeClassifier) FlagPhrase(phrase string, category string) {
	c.flaggedPhrases[phrase] = category
}

// FlagImagePattern makes any image containing pattern classify as category.
func (c *FakeClassifier) FlagImagePattern(pattern []byte, category string) {
	c.flaggedImages[category] = pattern
}

func (c *FakeClassifier) ClassifyText(ctx context.Context, text string) (string, error) {
	for phrase, category := range c.flaggedPhrases {
		if strings.Contains(text, phrase) {
			return category, nil
		}
	}
	return "", nil
}

func (c *FakeClassifier) ClassifyImage(ctx context.Context, image []byte) (string, error) {
	for category, pattern := range c.flaggedImages {
		if bytes.Contains(image, pattern) {
			return category, nil
		}
	}
	return "", nil
}
