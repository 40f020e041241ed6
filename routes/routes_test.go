package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/handlers"
	"bossmaids/models"
	"bossmaids/services/assistant"
	"bossmaids/services/auth"
	"bossmaids/services/billing"
	"bossmaids/services/campaigns"
	"bossmaids/services/crm"
	"bossmaids/services/messaging"
	"bossmaids/services/reports"
	"bossmaids/services/schedule"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDemoRouter wires the full application against a demo-mode local store,
// exactly as main does minus the server loop.
func newDemoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		StorageDriver: "supabase", // no credentials, demo mode
		DemoDataDir:   t.TempDir(),
	}
	store, err := database.New(cfg)
	require.NoError(t, err)

	authService := &auth.DefaultAuthService{
		Store: store,
		Cfg:   cfg,
		Cache: utils.NewMemorySessionCache(),
	}
	messagingService := &messaging.DefaultMessagingService{Store: store, Cfg: cfg}
	assistantService, err := assistant.NewAssistantService(cfg)
	require.NoError(t, err)

	hb := &handlers.HandlerBundle{
		Auth:        handlers.NewAuthHandler(authService),
		CRM:         handlers.NewCRMHandler(&crm.DefaultCRMService{Store: store}),
		Schedule:    handlers.NewScheduleHandler(&schedule.DefaultScheduleService{Store: store}, authService),
		Campaigns:   handlers.NewCampaignHandler(&campaigns.DefaultCampaignService{Store: store, Messaging: messagingService}),
		Billing:     handlers.NewBillingHandler(&billing.DefaultBillingService{Store: store, Cfg: cfg}, authService),
		Messaging:   handlers.NewMessagingHandler(messagingService),
		Assistant:   handlers.NewAssistantHandler(assistantService),
		Reports:     handlers.NewReportsHandler(&reports.DefaultReportsService{Store: store}),
		Diagnostics: handlers.NewDiagnosticsHandler(cfg, store),
	}

	router := gin.New()
	RegisterRoutes(router, hb, authService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signIn(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signin", "",
		`{"email":"demo@bossmaids.app","password":"demo"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthRoute(t *testing.T) {
	router := newDemoRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newDemoRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/clients", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/clients", "not-a-real-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDemoSignInAndListClients(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/clients", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var clients []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clients))
	assert.Len(t, clients, 5)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signout", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/clients", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLeadConversionFlow(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/leads/1/convert", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var client map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &client))
	assert.Equal(t, "Carlos Martinez", client["name"])

	w = doJSON(t, router, http.MethodPost, "/api/leads/missing/convert", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssistantQuoteRoute(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/assistant/quote", token,
		`{"bedrooms":3,"bathrooms":2,"squareFeet":1500,"service":"regular","frequency":"weekly","city":"Miami","state":"FL"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var breakdown models.QuoteBreakdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))
	assert.Equal(t, 159.0, breakdown.Total)
}

func TestDiagnosticsRoutes(t *testing.T) {
	router := newDemoRouter(t)

	// The integrations snapshot is public; the demo banner polls it before
	// sign-in.
	w := doJSON(t, router, http.MethodGet, "/api/diagnostics/integrations", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status["demoMode"])
	assert.False(t, status["stripe"])

	// Reset requires a session.
	w = doJSON(t, router, http.MethodPost, "/api/diagnostics/reset", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signIn(t, router)
	w = doJSON(t, router, http.MethodPost, "/api/diagnostics/reset", token, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBillingCheckoutRoute(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/billing/checkout", token,
		`{"plan":"premium"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sess models.CheckoutSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Contains(t, sess.URL, "plan=premium")

	w = doJSON(t, router, http.MethodGet, "/api/billing/status", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var status models.SubscriptionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "premium", status.Plan)
	assert.Equal(t, "active", status.Status)
}

func TestProfileUpdateFeedsAppointmentPricing(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	appointment := `{"date":"2026-09-10","time":"10:00","category":"regular","frequency":"weekly","bedrooms":3,"bathrooms":2,"square_feet":1500}`

	w := doJSON(t, router, http.MethodPost, "/api/appointments", token, appointment)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var before map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))

	// Relocating the business changes the locality multiplier behind
	// derived appointment values.
	w = doJSON(t, router, http.MethodPatch, "/api/auth/profile", token,
		`{"city":"New York","state":"NY"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "New York", user.City)
	assert.Equal(t, "NY", user.State)

	w = doJSON(t, router, http.MethodPost, "/api/appointments", token, appointment)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var after map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))

	assert.Greater(t, after["value"].(float64), before["value"].(float64))
}

func TestReportsSummaryRoute(t *testing.T) {
	router := newDemoRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/reports/summary", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signIn(t, router)
	w = doJSON(t, router, http.MethodGet, "/api/reports/summary?days=90", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary models.ReportSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 230.0, summary.TotalRevenue)
	assert.Equal(t, 5, summary.TotalClients)
	assert.Equal(t, 250.0, summary.ConversionRate)

	w = doJSON(t, router, http.MethodGet, "/api/reports/summary?days=banana", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationRoutes(t *testing.T) {
	router := newDemoRouter(t)
	token := signIn(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/notifications/refresh", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var feed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.NotEmpty(t, feed)

	id, _ := feed[0]["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(t, router, http.MethodPatch, "/api/notifications/"+id+"/read", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPatch, "/api/notifications/"+id+"/dismiss", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/notifications", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	for _, rec := range feed {
		assert.NotEqual(t, id, rec["id"])
	}
}
