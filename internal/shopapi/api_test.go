package shopapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lavendersgloss/glossd/config"
	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/internal/webserver"
	"github.com/lavendersgloss/glossd/pkg/common"
)

type testAppCtx struct {
	cfg *config.AppConfig
}

func (a *testAppCtx) Config() *config.AppConfig { return a.cfg }

func (a *testAppCtx) GetSettingsStringValue(category, key string) string {
	if category == "shop" && key == "placeholder_image" {
		return "/images/placeholder-product.jpg"
	}
	return ""
}

func setupAPI(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.AppConfig{}
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()

	ws := webserver.Init(cfg, db)
	RegisterRoutes(&testAppCtx{cfg: cfg})
	return ws.Echo(), db
}

func doJSON(e *echo.Echo, method, path, body, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e, _ := setupAPI(t)

	body := `{"name":"Amina","email":"amina@example.com","password":"secret123"}`
	if rec := doJSON(e, http.MethodPost, "/register", body, ""); rec.Code != http.StatusOK {
		t.Fatalf("first registration failed: %d %s", rec.Code, rec.Body.String())
	}
	rec := doJSON(e, http.MethodPost, "/register", body, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "DUPLICATE_EMAIL") {
		t.Fatalf("expected DUPLICATE_EMAIL code, got %s", rec.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e, _ := setupAPI(t)

	body := `{"name":"Njeri","email":"njeri@example.com","password":"secret123"}`
	if rec := doJSON(e, http.MethodPost, "/register", body, ""); rec.Code != http.StatusOK {
		t.Fatalf("registration failed: %d", rec.Code)
	}

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"njeri@example.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}
}

func TestAdminRouteDeniedForAnonymous(t *testing.T) {
	e, db := setupAPI(t)

	bookingID := seedTestBooking(t, db)

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/admin/approve-booking/%d", bookingID), "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", rec.Code)
	}
	assertBookingStatus(t, db, bookingID, domain.BookingPending)
}

func TestAdminRouteDeniedForNonAdmin(t *testing.T) {
	e, db := setupAPI(t)

	bookingID := seedTestBooking(t, db)

	register := `{"name":"Customer","email":"customer@example.com","password":"secret123"}`
	if rec := doJSON(e, http.MethodPost, "/register", register, ""); rec.Code != http.StatusOK {
		t.Fatalf("registration failed: %d", rec.Code)
	}
	login := doJSON(e, http.MethodPost, "/login", `{"email":"customer@example.com","password":"secret123"}`, "")
	if login.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", login.Code, login.Body.String())
	}
	cookie := login.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("expected a session cookie from login")
	}

	rec := doJSON(e, http.MethodPost, fmt.Sprintf("/admin/approve-booking/%d", bookingID), "", cookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin caller, got %d %s", rec.Code, rec.Body.String())
	}
	// Denied calls leave no state change behind.
	assertBookingStatus(t, db, bookingID, domain.BookingPending)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	e, _ := setupAPI(t)

	rec := doJSON(e, http.MethodPost, "/process-payment", `{"type":"cart"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous checkout, got %d", rec.Code)
	}
}

func TestCartCheckoutEndToEnd(t *testing.T) {
	e, db := setupAPI(t)

	product := domain.Product{Name: "All-Day Foundation", Price: 200, Stock: 5}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	register := `{"name":"Shopper","email":"shopper@example.com","password":"secret123"}`
	if rec := doJSON(e, http.MethodPost, "/register", register, ""); rec.Code != http.StatusOK {
		t.Fatalf("registration failed: %d", rec.Code)
	}
	login := doJSON(e, http.MethodPost, "/login", `{"email":"shopper@example.com","password":"secret123"}`, "")
	cookie := login.Header().Get("Set-Cookie")

	add := fmt.Sprintf(`{"product_id":%d,"quantity":2}`, product.ID)
	if rec := doJSON(e, http.MethodPost, "/add-to-cart", add, cookie); rec.Code != http.StatusOK {
		t.Fatalf("add-to-cart failed: %d %s", rec.Code, rec.Body.String())
	}

	pay := doJSON(e, http.MethodPost, "/process-payment", `{"type":"cart"}`, cookie)
	if pay.Code != http.StatusOK {
		t.Fatalf("checkout failed: %d %s", pay.Code, pay.Body.String())
	}
	if !strings.Contains(pay.Body.String(), `"total":400`) {
		t.Fatalf("expected total 400 in receipt, got %s", pay.Body.String())
	}

	var p domain.Product
	if err := db.First(&p, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if p.Stock != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", p.Stock)
	}
}

func seedTestBooking(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	b := domain.Booking{
		ID:            common.UUIDint64(),
		UserID:        common.UUIDint64(),
		ServiceName:   "Bridal Makeup",
		ServicePrice:  15000,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b.ID
}

func assertBookingStatus(t *testing.T, db *gorm.DB, id int64, want string) {
	t.Helper()
	var b domain.Booking
	if err := db.First(&b, id).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if b.Status != want {
		t.Fatalf("expected booking status %q, got %q", want, b.Status)
	}
}
