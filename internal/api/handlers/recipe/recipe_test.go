package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	recipeService "smarty-chef/internal/core/recipe"
	"smarty-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, q recipeService.Query) (*recipeService.Resolution, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(*recipeService.Resolution)
	return res, args.Error(1)
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate-recipe", h.HandleGenerateRecipe)

	req := httptest.NewRequest(http.MethodPost, "/generate-recipe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGenerateRecipePassesQuery(t *testing.T) {
	resolver := new(mockResolver)
	want := recipeService.Query{
		Ingredients:       []string{"chicken", "rice"},
		DietaryPreference: "Gluten-Free",
		Allergies:         "peanut, soy",
	}
	resolver.On("Resolve", mock.Anything, want).Return(&recipeService.Resolution{
		Recipes:        []recipeService.Recipe{{Title: "Rice Bowl"}},
		Source:         common.APISourceSpoonacular,
		TotalFound:     4,
		AfterFiltering: 1,
	}, nil)

	w := serve(NewHandler(resolver), `{"ingredients":["chicken"," ","rice"],"dietaryPreference":"Gluten-Free","allergies":"peanut, soy"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"apiSource":"Spoonacular"`)
	assert.Contains(t, w.Body.String(), `"totalFound":4`)
	assert.Contains(t, w.Body.String(), `"afterFiltering":1`)
	resolver.AssertExpectations(t)
}

func TestHandleGenerateRecipeSourceUnavailable(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(&recipeService.Resolution{
		Recipes: []recipeService.Recipe{recipeService.GenerateFallback([]string{"egg"}, "")},
		Source:  common.APISourceFallback,
		Reason:  common.ErrSourceUnavailable.Wrap(errors.New("Spoonacular search failed: 402 Payment Required")),
	}, nil)

	w := serve(NewHandler(resolver), `{"ingredients":["egg"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp common.GenerateRecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.APISourceFallback, resp.APISource)
	assert.Equal(t, "Spoonacular search failed: 402 Payment Required", resp.Error)
	assert.Equal(t, "API unavailable, showing demo recipe", resp.Message)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Egg Delight", resp.Recipes[0].Title)
}

func TestHandleGenerateRecipeInvalidInput(t *testing.T) {
	resolver := new(mockResolver)

	w := serve(NewHandler(resolver), `{"ingredients":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	assert.JSONEq(t, `{"error":"Please provide at least one ingredient","recipes":[]}`, w.Body.String())
}

func TestHandleGenerateRecipeUnexpectedError(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	w := serve(NewHandler(resolver), `{"ingredients":["egg"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInternalError)
}

func TestCleanIngredients(t *testing.T) {
	assert.Equal(t, []string{"egg", " ham "}, cleanIngredients([]string{"", "egg", "   ", " ham "}))
	assert.Empty(t, cleanIngredients(nil))
}
