package moderation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/wantsapp/wants-backend/utils"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

const (
	googleLanguageEndpoint = "https://language.googleapis.com/v1/documents:moderateText"
	googleVisionEndpoint   = "https://vision.googleapis.com/v1/images:annotate"

	// Categories are only reported above this confidence.
	textConfidenceThreshold = 0.8
)

// Categories the language API reports that are not treated as explicit
// content for this product.
var excludedTextCategories = []string{"Health", "Legal", "Religion & Belief"}

// GoogleClassifier moderates text through the Natural Language moderateText
// API and images through the Vision safe search API.
type GoogleClassifier struct {
	apiKey           string
	languageEndpoint string
	visionEndpoint   string
	client           *http.Client
}

func NewGoogleClassifier() *GoogleClassifier {
	return &GoogleClassifier{
		apiKey:           os.Getenv("GOOGLE_API_KEY"),
		languageEndpoint: googleLanguageEndpoint,
		visionEndpoint:   googleVisionEndpoint,
		client:           &http.Client{},
	}
}

type moderateTextResponse struct {
	ModerationCategories []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"moderationCategories"`
}

func (c *GoogleClassifier) ClassifyText(ctx context.Context, text string) (string, error) {
	payload := map[string]interface{}{
		"document": map[string]string{
			"type":    "PLAIN_TEXT",
			"content": text,
		},
	}

	var parsed moderateTextResponse
	if err := c.post(ctx, c.languageEndpoint, payload, &parsed); err != nil {
		return "", errors.Wrap(err, "moderate text")
	}

	for _, category := range parsed.ModerationCategories {
		if category.Name == "" {
			continue
		}
		if utils.ContainsString(excludedTextCategories, category.Name) {
			continue
		}
		if category.Confidence > textConfidenceThreshold {
			return category.Name, nil
		}
	}

	return "", nil
}

type safeSearchResponse struct {
	Responses []struct {
		SafeSearchAnnotation struct {
			Adult    string `json:"adult"`
			Medical  string `json:"medical"`
			Racy     string `json:"racy"`
			Spoof    string `json:"spoof"`
			Violence string `json:"violence"`
		} `json:"safeSearchAnnotation"`
	} `json:"responses"`
}

func (c *GoogleClassifier) ClassifyImage(ctx context.Context, image []byte) (string, error) {
	payload := map[string]interface{}{
		"requests": []interface{}{
			map[string]interface{}{
				"image":    map[string]string{"content": base64.StdEncoding.EncodeToString(image)},
				"features": []interface{}{map[string]string{"type": "SAFE_SEARCH_DETECTION"}},
			},
		},
	}

	var parsed safeSearchResponse
	if err := c.post(ctx, c.visionEndpoint, payload, &parsed); err != nil {
		return "", errors.Wrap(err, "moderate image")
	}
	if len(parsed.Responses) == 0 {
		return "", nil
	}

	detections := parsed.Responses[0].SafeSearchAnnotation
	likelihoods := []struct {
		value    string
		category string
	}{
		{detections.Adult, "Adult"},
		{detections.Medical, "Medical"},
		{detections.Racy, "Racy"},
		{detections.Spoof, "Spoof"},
		{detections.Violence, "Violence"},
	}
	for _, l := range likelihoods {
		if l.value == "LIKELY" || l.value == "VERY_LIKELY" {
			return l.category, nil
		}
	}

	return "", nil
}

func (c *GoogleClassifier) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		resBody, _ := ioutil.ReadAll(res.Body)
		Logger.Log.Errorf("non-200 moderation http code: %d, body: %s", res.StatusCode, string(resBody))
		return errors.Errorf("moderation http status %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
