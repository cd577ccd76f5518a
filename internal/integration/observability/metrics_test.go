package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/usecase/entry"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

func TestEntryObserver(t *testing.T) {
	observe := EntryObserver()
	guest := entity.GuestIdentity("sid")

	added := entryChangeCounter.WithLabelValues(string(entry.ChangeAdded), string(entity.IdentityGuest))
	logged := emissionsLoggedCounter.WithLabelValues(string(entity.IdentityGuest))
	beforeAdded := testutil.ToFloat64(added)
	beforeLogged := testutil.ToFloat64(logged)

	observe(entry.Change{Kind: entry.ChangeAdded, Identity: guest, Entry: &entity.Entry{CO2e: 4.2}})
	observe(entry.Change{Kind: entry.ChangeLoaded, Identity: guest})

	assert.Equal(t, beforeAdded+1, testutil.ToFloat64(added))
	assert.InDelta(t, beforeLogged+4.2, testutil.ToFloat64(logged), 1e-9)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := httpRequestCounter.WithLabelValues(http.MethodGet, "/ping/:id", "204")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/42", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordEmail(t *testing.T) {
	counter := emailCounter.WithLabelValues("welcome", "sent")
	before := testutil.ToFloat64(counter)
	RecordEmail("welcome", "sent")
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRegisterDBStats_Twice(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, RegisterDBStats(sqlDB, "observability_test"))
	assert.NoError(t, RegisterDBStats(sqlDB, "observability_test"))
}
