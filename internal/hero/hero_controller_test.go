package hero

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/DhavalSuthar-24/superheroes/config"
	"github.com/DhavalSuthar-24/superheroes/internal/database"
	"github.com/DhavalSuthar-24/superheroes/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  map[string]any  `json:"errors"`
}

func newTestRouter(t *testing.T, db *gorm.DB, authEnabled bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.Enabled = authEnabled
	cfg.JWT.Secret = testSecret

	r := gin.New()
	require.NoError(t, RegisterHeroRoutes(r.Group("/api"), db, cfg, zap.NewNop()))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func TestCreateHeroPowerInvalidStrengthHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	h, p, _ := createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodPost, "/api/hero_powers", map[string]any{
		"strength": "Invincible",
		"hero_id":  h.ID,
		"power_id": p.ID,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Strength must be one of: 'Strong', 'Weak', 'Average'", env.Errors["strength"])
	assert.Equal(t, int64(1), countRows(t, db, &HeroPower{}))
}

func TestCreateHeroPowerHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)

	w, env := doJSON(t, r, http.MethodPost, "/api/heroes", map[string]any{"name": "Bruce Wayne", "super_name": "Batman"})
	require.Equal(t, http.StatusCreated, w.Code)
	hero := decodeData[map[string]any](t, env)

	w, env = doJSON(t, r, http.MethodPost, "/api/powers", map[string]any{
		"name":        "flight",
		"description": "Ability to fly at supersonic speed",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	power := decodeData[map[string]any](t, env)
	assert.NotContains(t, power, "hero_powers")

	w, env = doJSON(t, r, http.MethodPost, "/api/hero_powers", map[string]any{
		"strength": "Strong",
		"hero_id":  hero["id"],
		"power_id": power["id"],
	})
	require.Equal(t, http.StatusCreated, w.Code)
	heroPower := decodeData[map[string]any](t, env)
	assert.Equal(t, "Strong", heroPower["strength"])
	assert.Equal(t, hero["id"], heroPower["hero"].(map[string]any)["id"])
	assert.Equal(t, power["id"], heroPower["power"].(map[string]any)["id"])
	assert.NotContains(t, heroPower["hero"], "hero_powers")
}

func TestCreateHeroPowerUnknownHeroHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	_, p, _ := createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodPost, "/api/hero_powers", map[string]any{
		"strength": "Weak",
		"hero_id":  999,
		"power_id": p.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, env.Errors["error"], "hero 999")
	assert.Equal(t, int64(1), countRows(t, db, &HeroPower{}))
}

func TestCreatePowerShortDescriptionHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)

	w, env := doJSON(t, r, http.MethodPost, "/api/powers", map[string]any{"name": "blink", "description": "too short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Description must be at least 20 characters long", env.Errors["description"])
	assert.Zero(t, countRows(t, db, &Power{}))
}

func TestGetHeroHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	h, _, _ := createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodGet, idPath("/api/heroes", h.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	hero := decodeData[map[string]any](t, env)
	assert.Equal(t, "Batman", hero["super_name"])
	heroPowers := hero["hero_powers"].([]any)
	require.Len(t, heroPowers, 1)
	hp := heroPowers[0].(map[string]any)
	assert.NotContains(t, hp, "hero")
	assert.Equal(t, "flight", hp["power"].(map[string]any)["name"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/heroes/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/heroes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHeroesHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodGet, "/api/heroes?page=1&pageSize=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	heroes := decodeData[[]map[string]any](t, env)
	require.Len(t, heroes, 1)
	assert.NotContains(t, heroes[0], "hero_powers")
	assert.Equal(t, "Bruce Wayne", heroes[0]["name"])
}

func TestListHeroPowersRejectsBadFilter(t *testing.T) {
	r := newTestRouter(t, newTestDB(t), false)

	w, _ := doJSON(t, r, http.MethodGet, "/api/hero_powers?hero_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateHandlersHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	h, p, hp := createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodPatch, idPath("/api/heroes", h.ID), map[string]any{"super_name": "The Bat"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The Bat", decodeData[map[string]any](t, env)["super_name"])

	w, env = doJSON(t, r, http.MethodPatch, idPath("/api/powers", p.ID), map[string]any{"description": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "description")

	w, env = doJSON(t, r, http.MethodPatch, idPath("/api/hero_powers", hp.ID), map[string]any{"strength": "weak"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "strength")

	w, env = doJSON(t, r, http.MethodPatch, idPath("/api/hero_powers", hp.ID), map[string]any{"strength": "Average"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Average", decodeData[map[string]any](t, env)["strength"])
}

func TestDeleteHandlersHTTP(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	h, p, _ := createGraph(t, NewHeroRepository(db))

	w, env := doJSON(t, r, http.MethodDelete, idPath("/api/powers", p.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Power conflicts with related records", env.Errors["error"])
	assert.NotContains(t, w.Body.String(), "constraint")

	w, _ = doJSON(t, r, http.MethodDelete, idPath("/api/heroes", h.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, countRows(t, db, &HeroPower{}))

	w, _ = doJSON(t, r, http.MethodDelete, idPath("/api/powers", p.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, idPath("/api/powers", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWriteRoutesRequireTokenWhenAuthEnabled(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, true)
	body := map[string]any{"name": "Bruce Wayne", "super_name": "Batman"}

	w, _ := doJSON(t, r, http.MethodPost, "/api/heroes", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, countRows(t, db, &Hero{}))

	w, _ = doJSON(t, r, http.MethodGet, "/api/heroes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	jwt, err := token.GenerateJWT("tester", token.WriteScope, testSecret, 5)
	require.NoError(t, err)
	w, _ = doJSON(t, r, http.MethodPost, "/api/heroes", body, "Authorization", "Bearer "+jwt)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), countRows(t, db, &Hero{}))
}

func TestServerErrorHidesCause(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db, false)
	require.NoError(t, database.Close(db))

	w, env := doJSON(t, r, http.MethodGet, "/api/heroes", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Failed to retrieve heroes", env.Message)
	assert.Nil(t, env.Errors)
	assert.NotContains(t, w.Body.String(), "closed")
}
