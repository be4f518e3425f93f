package recommendation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"room-booking-api/core/config"
	"room-booking-api/core/middleware"
	"room-booking-api/core/utils"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresWithoutRedis(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	mod, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, mod.Directory)
	assert.NotNil(t, mod.Service)
	assert.Nil(t, mod.Snapshots)

	assert.NotPanics(t, func() { mod.RegisterTasks(asynq.NewServeMux()) })
}

func TestNew_RejectsBadDayBounds(t *testing.T) {
	t.Setenv("RECOMMENDATION_DAY_START", "8am")
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	_, err = New(cfg, nil, nil, nil)
	assert.Error(t, err)
}

func TestRegisterRoutes(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	mod, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = utils.NewValidator()
	mod.RegisterRoutes(e, middleware.NewMiddleware())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/recommendations/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/private/recommendations", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
