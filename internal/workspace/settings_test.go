package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestStore_GetReturnsDefaultsWhenUnset(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "pt-BR", settings.Language)
	assert.Nil(t, settings.BusinessHours.Saturday)
	require.NotNil(t, settings.BusinessHours.Monday)
	assert.Equal(t, "08:00", settings.BusinessHours.Monday.Open)
}

func TestStore_SetThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := DefaultSettings()
	saved.ClinicName = "Clínica Aurora"
	saved.BusinessHours.Saturday = &DayHours{Open: "09:00", Close: "13:00"}
	require.NoError(t, store.Set(ctx, saved))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Clínica Aurora", got.ClinicName)
	require.NotNil(t, got.BusinessHours.Saturday)
	assert.Equal(t, "13:00", got.BusinessHours.Saturday.Close)
}

func TestHandler_GetAndUpdate(t *testing.T) {
	store := newTestStore(t)
	h := NewHandler(store, logging.Default())

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var settings Settings
	require.NoError(t, json.NewDecoder(w.Body).Decode(&settings))
	settings.ClinicName = "Clínica Aurora"
	settings.Notifications.EmailEnabled = true
	settings.Notifications.EmailRecipients = []string{"dona@aurora.com"}

	body, err := json.Marshal(settings)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Notifications.EmailEnabled)
	assert.Equal(t, []string{"dona@aurora.com"}, got.Notifications.EmailRecipients)
}

func TestHandler_UpdateRejectsMissingName(t *testing.T) {
	store := newTestStore(t)
	h := NewHandler(store, logging.Default())

	body, err := json.Marshal(Settings{Timezone: "America/Recife"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
