package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoshop/console/internal/models"
)

func receptionRequest() map[string]any {
	return map[string]any{
		"customerInfo": map[string]string{
			"name":  "Dana",
			"phone": "555-0101",
		},
		"vehicleInfo": map[string]string{
			"make":        "Toyota",
			"model":       "Corolla",
			"plateNumber": "AB-123",
		},
		"serviceInfo": map[string]any{
			"description":        "Brake noise",
			"customerComplaints": []string{"squeal when braking"},
		},
	}
}

func TestReceptionCreate_ForcesPending(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[models.Reception](t, rec)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestReceptionCreate_AutoCreatesCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, ok := env.customers.ByPhone("555-0101")
	require.False(t, ok)

	rec := env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	c, ok := env.customers.ByPhone("555-0101")
	require.True(t, ok)
	assert.Equal(t, "Dana", c.Name)

	// A second intake for the same phone reuses the record.
	rec = env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, env.customers.List(), 1)
}

func TestReceptionCreate_MissingPlate(t *testing.T) {
	env := newTestEnv(t)

	body := receptionRequest()
	body["vehicleInfo"] = map[string]string{"make": "Toyota"}
	rec := env.authed(t, http.MethodPost, "/api/receptions", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.receptions.List())
}

func TestReceptionUpdate_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodPatch, "/api/receptions/absent",
		map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReceptionUpdate_Status(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[models.Reception](t, rec)

	rec = env.authed(t, http.MethodPatch, "/api/receptions/"+created.ID,
		map[string]string{"status": "in-progress"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	got, ok := env.receptions.ByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestReceptionDocument(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[models.Reception](t, rec)

	rec = env.authed(t, http.MethodGet, "/api/receptions/"+created.ID+"/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Dana-")

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "Dana"))
	assert.Contains(t, body, "AB-123")
	assert.Contains(t, body, "squeal when braking")
}

func TestReceptionDocument_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodGet, "/api/receptions/absent/document", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReceptionDelete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.authed(t, http.MethodPost, "/api/receptions", receptionRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[models.Reception](t, rec)

	rec = env.authed(t, http.MethodDelete, "/api/receptions/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.receptions.List())
}
