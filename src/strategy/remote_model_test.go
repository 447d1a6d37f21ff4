package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionsage/optionsage/src/models"
)

func TestRemoteModelClient(t *testing.T) {
	ctx := context.Background()

	t.Run("predict round trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/XYZ/predict", r.URL.Path)

			var req predictRequestDTO
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Window, 2)

			fmt.Fprint(w, `{"predicted_close": 101.25}`)
		}))
		defer server.Close()

		client := NewRemoteModelClient(server.URL)

		predicted, err := client.Predict(ctx, "XYZ", [][]float64{{1, 2}, {3, 4}})
		require.NoError(t, err)
		assert.Equal(t, 101.25, predicted)
	})

	t.Run("404 maps to the missing-model variant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewRemoteModelClient(server.URL)

		_, err := client.Predict(ctx, "XYZ", [][]float64{{1}})
		assert.ErrorIs(t, err, models.ModelMissingErr)

		_, err = client.Classify(ctx, []float64{1, 2, 3})
		assert.ErrorIs(t, err, models.ModelMissingErr)
	})

	t.Run("classify round trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/classifier/classify", r.URL.Path)
			fmt.Fprint(w, `{"label": "iron_condor"}`)
		}))
		defer server.Close()

		client := NewRemoteModelClient(server.URL)

		label, err := client.Classify(ctx, []float64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, models.StrategyIronCondor, label)
	})

	t.Run("train failure wraps the training-failed variant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewRemoteModelClient(server.URL)

		err := client.Train(ctx, "XYZ")
		assert.ErrorIs(t, err, models.TrainingFailedErr)
	})
}
