package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"kam-api/events"
	geomocks "kam-api/geocode/mocks"
	"kam-api/handlers"
	"kam-api/middleware"
	"kam-api/models"
	"kam-api/services"
	"kam-api/store"
	"kam-api/testutil"
)

type api struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	jwt    *middleware.JWT
	lookup *geomocks.MockTimezoneLookup
}

func newAPI(t *testing.T, now time.Time) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	s := store.New(db)
	log := testutil.Logger()
	kam := services.NewKAMService(s, log).WithClock(func() time.Time { return now })
	jwt := middleware.NewJWT("test-secret", time.Hour)
	lookup := geomocks.NewMockTimezoneLookup(gomock.NewController(t))

	r := gin.New()
	SetupRoutes(r, Handlers{
		JWT:          jwt,
		Public:       handlers.NewPublicHandler(s),
		Auth:         handlers.NewAuthHandler(s, jwt),
		Restaurants:  handlers.NewRestaurantHandler(s),
		Contacts:     handlers.NewContactHandler(s),
		Interactions: handlers.NewInteractionHandler(s, services.NewInteractionService(s, events.NopPublisher{}, log)),
		Addresses:    handlers.NewAddressHandler(s, services.NewAddressService(s, lookup, log)),
		KAM:          handlers.NewKAMHandler(kam),
		Admin:        handlers.NewAdminHandler(s, kam),
	})
	return &api{t: t, router: r, db: db, jwt: jwt, lookup: lookup}
}

func (a *api) token(role models.UserRole) string {
	a.t.Helper()
	u := models.User{Username: fmt.Sprintf("user-%s-%d", role, time.Now().UnixNano()), PasswordHash: "x", Role: role}
	require.NoError(a.t, a.db.Create(&u).Error)
	tok, err := a.jwt.GenerateToken(&u)
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	a := newAPI(t, time.Now())
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t, time.Now())

	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "asha", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"role":"KAM"`)

	w = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "asha", "password": "secret2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "ravi", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password must be at least 6 characters")

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "asha", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "asha", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Token string `json:"token"`
	}](t, w)
	require.NotEmpty(t, body.Token)

	w = a.do(http.MethodGet, "/api/auth/profile", body.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"asha"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRBAC(t *testing.T) {
	a := newAPI(t, time.Now())
	viewer := a.token(models.RoleViewer)
	kam := a.token(models.RoleKAM)
	admin := a.token(models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/restaurants", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/restaurants", viewer, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/restaurants", viewer, gin.H{"name": "X"}).Code)

	w := a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "X"})
	require.Equal(t, http.StatusCreated, w.Code)
	r := decode[models.Restaurant](t, w)

	path := fmt.Sprintf("/api/restaurants/%d", r.ID)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, kam, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, path, admin, nil).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/admin/users", kam, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/admin/users", admin, nil).Code)
}

func TestRestaurantLifecycle(t *testing.T) {
	a := newAPI(t, time.Now())
	kam := a.token(models.RoleKAM)

	w := a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "Spice Route"})
	require.Equal(t, http.StatusCreated, w.Code)
	r := decode[models.Restaurant](t, w)
	assert.Equal(t, models.StatusActive, r.Status)
	assert.Equal(t, 7, r.CallFrequency)
	assert.Nil(t, r.LastCallDate)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "Bad", "call_frequency": 0}).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "Bad", "status": "archived"}).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"status": "active"}).Code)

	path := fmt.Sprintf("/api/restaurants/%d", r.ID)
	w = a.do(http.MethodPut, path, kam, gin.H{"status": "converted", "call_frequency": 14})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Restaurant](t, w)
	assert.Equal(t, models.StatusConverted, updated.Status)
	assert.Equal(t, 14, updated.CallFrequency)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPut, path, kam, gin.H{"call_frequency": -2}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/restaurants/999", kam, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/restaurants/abc", kam, nil).Code)

	w = a.do(http.MethodGet, "/api/restaurants?status=converted&search=spice", kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Restaurant](t, w), 1)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/restaurants?status=nope", kam, nil).Code)
}

func TestInteractionsDriveScheduleAndPerformance(t *testing.T) {
	a := newAPI(t, time.Date(2024, 12, 8, 12, 0, 0, 0, time.UTC))
	kam := a.token(models.RoleKAM)

	w := a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "Spice Route"})
	require.Equal(t, http.StatusCreated, w.Code)
	r := decode[models.Restaurant](t, w)

	// Never called: due.
	w = a.do(http.MethodGet, "/api/restaurants/due-calls", kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Restaurant](t, w), 1)

	for _, d := range []string{"2024-12-01T00:00:00Z", "2024-12-05T00:00:00Z", "2024-12-10T00:00:00Z"} {
		w = a.do(http.MethodPost, "/api/interactions", kam, gin.H{"type": "order", "restaurant_id": r.ID, "date": d})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w = a.do(http.MethodPost, "/api/interactions", kam, gin.H{"type": "call", "restaurant_id": r.ID, "date": "2024-12-02T00:00:00Z"})
	require.Equal(t, http.StatusCreated, w.Code)

	got := decode[models.Restaurant](t, a.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d", r.ID), kam, nil))
	require.NotNil(t, got.LastCallDate)
	assert.True(t, got.LastCallDate.Equal(time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)))

	// Called 2024-12-02 with a 7 day cadence: next call 2024-12-09.
	w = a.do(http.MethodGet, "/api/interactions/leads/due", kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = a.do(http.MethodGet, "/api/restaurants/performance-metrics", kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"name":"Spice Route","totalOrders":3,"averageOrderFrequency":5,"performanceStatus":"average"}]`, r.ID), w.Body.String())

	w = a.do(http.MethodGet, "/api/interactions/performance", kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"restaurantId":%d,"name":"Spice Route","orderFrequency":3,"status":"underperforming"}]`, r.ID), w.Body.String())

	w = a.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d/order-frequency", r.ID), kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"frequency":3,"averageGap":5}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/restaurants/999/order-frequency", kam, nil).Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/interactions/restaurant/%d", r.ID), kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Interaction](t, w)
	require.Len(t, list, 4)
	assert.True(t, list[0].Date.After(list[3].Date), "newest first")

	w = a.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d/interactions?type=call", r.ID), kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Interaction](t, w), 1)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/interactions", kam, gin.H{"type": "sms", "restaurant_id": r.ID}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/interactions", kam, gin.H{"type": "call", "restaurant_id": 999}).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/restaurants/due-calls?timezone=Not/AZone", kam, nil).Code)
}

func TestContactsAndAddresses(t *testing.T) {
	a := newAPI(t, time.Now())
	kam := a.token(models.RoleKAM)

	a.lookup.EXPECT().GetTimezone(gomock.Any(), "Pune", "India").Return("Asia/Kolkata", nil)
	w := a.do(http.MethodPost, "/api/addresses", kam, gin.H{"city": "Pune", "country": "India", "pin_code": "411001", "timezone": "UTC"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	addr := decode[models.Address](t, w)
	require.NotNil(t, addr.Timezone)
	assert.Equal(t, "Asia/Kolkata", *addr.Timezone)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/addresses", kam, gin.H{"city": "Pune"}).Code)

	w = a.do(http.MethodPost, "/api/restaurants", kam, gin.H{"name": "Located", "address_id": addr.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	r := decode[models.Restaurant](t, w)

	w = a.do(http.MethodPost, "/api/contacts", kam, gin.H{"name": "Asha", "role": "Owner", "email": "not-an-email", "restaurant_id": r.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email address")

	w = a.do(http.MethodPost, "/api/contacts", kam, gin.H{"name": "Asha", "role": "Owner", "email": "asha@example.com", "restaurant_id": r.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/contacts/restaurant/%d", r.ID), kam, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Contact](t, w), 1)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/restaurants/999/contacts", kam, nil).Code)

	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, fmt.Sprintf("/api/addresses/%d", addr.ID), kam, nil).Code)
	got := decode[models.Restaurant](t, a.do(http.MethodGet, fmt.Sprintf("/api/restaurants/%d", r.ID), kam, nil))
	assert.Nil(t, got.AddressID)
}

func TestAdminRestaurants(t *testing.T) {
	a := newAPI(t, time.Date(2024, 12, 8, 12, 0, 0, 0, time.UTC))
	admin := a.token(models.RoleAdmin)
	recent := time.Date(2024, 12, 7, 0, 0, 0, 0, time.UTC)
	testutil.SeedRestaurant(t, a.db, "Due", 7, nil)
	testutil.SeedRestaurant(t, a.db, "Fresh", 7, &recent)

	w := a.do(http.MethodGet, "/api/admin/restaurants", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		StatusSummary map[string]int64 `json:"status_summary"`
		DueForCall    int              `json:"due_for_call"`
		Count         int              `json:"count"`
	}](t, w)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 1, body.DueForCall)
	assert.Equal(t, int64(2), body.StatusSummary["active"])
	assert.Equal(t, int64(0), body.StatusSummary["converted"])

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/admin/users?role=root", admin, nil).Code)
}
