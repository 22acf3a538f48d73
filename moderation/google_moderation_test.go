package moderation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(handler http.HandlerFunc) (*GoogleClassifier, *httptest.Server) {
	server := httptest.NewServer(handler)
	classifier := &GoogleClassifier{
		apiKey:           "test-key",
		languageEndpoint: server.URL,
		visionEndpoint:   server.URL,
		client:           server.Client(),
	}
	return classifier, server
}

func TestClassifyTextFlagsHighConfidence(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"moderationCategories": [
			{"name": "Toxic", "confidence": 0.93},
			{"name": "Insult", "confidence": 0.4}
		]}`)
	})
	defer server.Close()

	category, err := classifier.ClassifyText(context.Background(), "some hostile text")
	require.NoError(t, err)
	assert.Equal(t, "Toxic", category)
}

func TestClassifyTextIgnoresLowConfidence(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"moderationCategories": [
			{"name": "Toxic", "confidence": 0.5},
			{"name": "Profanity", "confidence": 0.79}
		]}`)
	})
	defer server.Close()

	category, err := classifier.ClassifyText(context.Background(), "mildly grumpy text")
	require.NoError(t, err)
	assert.Empty(t, category)
}

func TestClassifyTextSkipsExcludedCategories(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"moderationCategories": [
			{"name": "Health", "confidence": 0.99},
			{"name": "Religion & Belief", "confidence": 0.95}
		]}`)
	})
	defer server.Close()

	category, err := classifier.ClassifyText(context.Background(), "looking for a yoga and meditation group")
	require.NoError(t, err)
	assert.Empty(t, category)
}

func TestClassifyImage(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responses": [{
			"safeSearchAnnotation": {
				"adult": "UNLIKELY",
				"medical": "VERY_UNLIKELY",
				"racy": "LIKELY",
				"spoof": "POSSIBLE",
				"violence": "VERY_UNLIKELY"
			}
		}]}`)
	})
	defer server.Close()

	category, err := classifier.ClassifyImage(context.Background(), []byte("imagedata"))
	require.NoError(t, err)
	assert.Equal(t, "Racy", category)
}

func TestClassifyImageClean(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responses": [{
			"safeSearchAnnotation": {
				"adult": "VERY_UNLIKELY",
				"medical": "VERY_UNLIKELY",
				"racy": "UNLIKELY",
				"spoof": "UNLIKELY",
				"violence": "VERY_UNLIKELY"
			}
		}]}`)
	})
	defer server.Close()

	category, err := classifier.ClassifyImage(context.Background(), []byte("imagedata"))
	require.NoError(t, err)
	assert.Empty(t, category)
}

func TestClassifyHttpFailure(t *testing.T) {
	classifier, server := newTestClassifier(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	_, err := classifier.ClassifyText(context.Background(), "anything")
	assert.Error(t, err)

	_, err = classifier.ClassifyImage(context.Background(), []byte("anything"))
	assert.Error(t, err)
}
