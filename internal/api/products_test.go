package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		writeJSON(w, []map[string]any{
			{"id": "p1", "name": "Widget", "owner": "zoe", "created_at": "2026-01-02T10:00:00Z"},
		})
	})

	products, err := client.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, "2026-01-02T10:00:00Z", products[0].CreatedAt)
}

func TestCreateProductOmitsID(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		json.NewDecoder(r.Body).Decode(&raw)
		_, hasID := raw["id"]
		assert.False(t, hasID)

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"id": "p7", "name": raw["name"], "created_at": "2026-08-28T00:00:00Z"})
	})

	created, err := client.CreateProduct(ProductInput{Name: "Widget", Owner: "zoe"})
	require.NoError(t, err)
	assert.Equal(t, "p7", created.ID)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestUpdateProductSendsWritableFieldsOnly(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/p1", r.URL.Path)

		var raw map[string]any
		json.NewDecoder(r.Body).Decode(&raw)
		assert.Equal(t, "Widget v2", raw["name"])
		_, hasCreated := raw["created_at"]
		assert.False(t, hasCreated)

		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateProduct("p1", ProductInput{Name: "Widget v2"})
	assert.NoError(t, err)
}

func TestDeleteProduct(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteProduct("p1"))
}
