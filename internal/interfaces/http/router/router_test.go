package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	billingapp "github.com/paytrack/backend/internal/application/billing"
	crmapp "github.com/paytrack/backend/internal/application/crm"
	identityapp "github.com/paytrack/backend/internal/application/identity"
	reportapp "github.com/paytrack/backend/internal/application/report"
	"github.com/paytrack/backend/internal/domain/identity"
	"github.com/paytrack/backend/internal/infrastructure/auth"
	"github.com/paytrack/backend/internal/infrastructure/config"
	"github.com/paytrack/backend/internal/infrastructure/persistence"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
	"github.com/paytrack/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CustomerModel{},
		&models.PurchaseModel{},
		&models.PaymentModel{},
	))

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret",
		Issuer:                 "paytrack-test",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	customerService := crmapp.NewCustomerService(customerRepo)
	importService := crmapp.NewCustomerImportService(customerRepo, log)
	purchaseService := billingapp.NewPurchaseService(purchaseRepo, paymentRepo, customerRepo)
	paymentService := billingapp.NewPaymentService(paymentRepo, purchaseRepo, customerRepo)
	reportService := reportapp.NewReportService(reportRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)

	engine := New(Config{
		HTTP:       config.HTTPConfig{MaxBodySize: 1 << 20},
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
		Handlers: Handlers{
			Auth:     handler.NewAuthHandler(authService),
			Customer: handler.NewCustomerHandler(customerService, importService, purchaseService),
			Purchase: handler.NewPurchaseHandler(purchaseService),
			Payment:  handler.NewPaymentHandler(paymentService, reportService),
			Report:   handler.NewReportHandler(reportService),
			Admin:    handler.NewAdminHandler(userService, customerService, reportService),
		},
	})

	return &testAPI{engine: engine, db: db}
}

func (a *testAPI) seedUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password, role)
	require.NoError(t, err)
	require.NoError(t, a.db.Create(models.UserModelFromDomain(user)).Error)
	return user
}

func (a *testAPI) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	w := a.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Tokens.AccessToken)
	return resp.Data.Tokens.AccessToken
}

func dataField(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestRouterAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alice", "secret123", identity.RoleUser)

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/customers", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := api.request(t, "POST", "/api/v1/auth/login", "", map[string]string{
			"username": "alice", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login then me", func(t *testing.T) {
		token := api.login(t, "alice", "secret123")

		w := api.request(t, "GET", "/api/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var me struct {
			Username string `json:"username"`
		}
		dataField(t, w, &me)
		assert.Equal(t, "alice", me.Username)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := api.login(t, "alice", "secret123")

		w := api.request(t, "POST", "/api/v1/auth/logout", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = api.request(t, "GET", "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouterPurchaseAndPaymentFlow(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alice", "secret123", identity.RoleUser)
	api.seedUser(t, "mallory", "secret123", identity.RoleUser)
	alice := api.login(t, "alice", "secret123")
	mallory := api.login(t, "mallory", "secret123")

	// Alice creates a customer.
	w := api.request(t, "POST", "/api/v1/customers", alice, map[string]string{
		"name":  "Acme Corp",
		"email": "billing@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customer struct {
		ID string `json:"id"`
	}
	dataField(t, w, &customer)

	// A monthly purchase generates 13 payments (initial + 12 rentals).
	w = api.request(t, "POST", "/api/v1/purchases", alice, map[string]any{
		"customer_id":      customer.ID,
		"product":          "Espresso machine",
		"purchase_date":    "2024-01-15T00:00:00Z",
		"initial_payment":  "100.00",
		"rental_amount":    "50.00",
		"rental_frequency": "monthly",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var purchase struct {
		ID       string `json:"id"`
		Payments []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"payments"`
	}
	dataField(t, w, &purchase)
	require.Len(t, purchase.Payments, 13)
	assert.Equal(t, "paid", purchase.Payments[0].Status)

	unpaidID := purchase.Payments[1].ID

	t.Run("cross-tenant purchase read is not found", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/purchases/"+purchase.ID, mallory, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cross-tenant mark-paid is forbidden", func(t *testing.T) {
		w := api.request(t, "PATCH", fmt.Sprintf("/api/v1/payments/%s/mark-paid", unpaidID), mallory, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("mark paid then conflict on repeat", func(t *testing.T) {
		w := api.request(t, "PATCH", fmt.Sprintf("/api/v1/payments/%s/mark-paid", unpaidID), alice, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var payment struct {
			Status   string  `json:"status"`
			PaidDate *string `json:"paid_date"`
		}
		dataField(t, w, &payment)
		assert.Equal(t, "paid", payment.Status)
		assert.NotNil(t, payment.PaidDate)

		w = api.request(t, "PATCH", fmt.Sprintf("/api/v1/payments/%s/mark-paid", unpaidID), alice, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown payment is not found", func(t *testing.T) {
		w := api.request(t, "PATCH", "/api/v1/payments/00000000-0000-0000-0000-000000000042/mark-paid", alice, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("kpi reflects marked payments", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/kpi?period=all", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var kpi struct {
			TotalPaid    string `json:"total_paid"`
			TotalOverdue string `json:"total_overdue"`
		}
		dataField(t, w, &kpi)
		// Initial payment plus the one marked above.
		assert.Equal(t, "150.00", kpi.TotalPaid)
	})

	t.Run("overdue count excludes paid payments", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/payments/overdue-count", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var count struct {
			Count int `json:"count"`
		}
		dataField(t, w, &count)
		assert.Greater(t, count.Count, 0)
	})

	t.Run("invalid period is rejected", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/kpi?period=week", alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouterBulkImport(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "alice", "secret123", identity.RoleUser)
	token := api.login(t, "alice", "secret123")

	csv := "name,email,phone\nAcme Corp,billing@acme.test,555-0100\n,missing-name@x.test,\nZed Ltd,,\n"
	req := httptest.NewRequest("POST", "/api/v1/customers/bulk-import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Total        int `json:"total"`
		SuccessCount int `json:"success_count"`
		FailedCount  int `json:"failed_count"`
		Failed       []struct {
			Row int `json:"row"`
		} `json:"failed"`
	}
	dataField(t, w, &result)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 3, result.Failed[0].Row)
}

func TestRouterAdminRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.seedUser(t, "root", "secret123", identity.RoleAdmin)
	api.seedUser(t, "alice", "secret123", identity.RoleUser)
	admin := api.login(t, "root", "secret123")
	user := api.login(t, "alice", "secret123")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/admin/users", user, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin lists users with stats", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/admin/users", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var users []struct {
			Username string `json:"username"`
		}
		dataField(t, w, &users)
		assert.Len(t, users, 2)
	})

	t.Run("admin creates and deletes a user", func(t *testing.T) {
		w := api.request(t, "POST", "/api/v1/admin/users", admin, map[string]string{
			"username": "carol", "password": "secret123", "role": "user",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created struct {
			ID string `json:"id"`
		}
		dataField(t, w, &created)

		w = api.request(t, "DELETE", "/api/v1/admin/users/"+created.ID, admin, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := api.request(t, "POST", "/api/v1/admin/users", admin, map[string]string{
			"username": "alice", "password": "secret123", "role": "user",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("admin activity feed", func(t *testing.T) {
		w := api.request(t, "GET", "/api/v1/admin/activity", admin, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
