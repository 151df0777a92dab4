package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/bcf-portal/api/middleware"
	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/orders"
	"github.com/angelmondragon/bcf-portal/internal/workflow"
	"github.com/angelmondragon/bcf-portal/pkg/clock"
	"github.com/angelmondragon/bcf-portal/pkg/config"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

func newTestRegistry(t *testing.T, history *orders.MemoryHistory) (*workflow.Registry, catalog.Reader) {
	t.Helper()
	reader, err := catalog.NewStaticReader(catalog.DefaultProducts())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ids, err := orders.NewRandomIDGenerator("BCF", 6, nil)
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	submitter, err := orders.NewSubmitter(orders.SubmitterConfig{History: history, IDs: ids, Clock: clk})
	if err != nil {
		t.Fatalf("submitter: %v", err)
	}
	reg, err := workflow.NewRegistry(workflow.Deps{Catalog: reader, Submitter: submitter, History: history, Clock: clk})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg, reader
}

func ownerRequest(method, target, body, owner string, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := req.Context()
	if owner != "" {
		ctx = middleware.WithOwner(ctx, owner)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return payload.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return payload.Error.Code
}

func TestStartConfigurationRejectsMissingProduct(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	rec := serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{}`, "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStartConfigurationUnknownProduct(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	rec := serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":77}`, "buyer", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestControllersRequireOwner(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	rec := serve(GetBatch(reg, logger.Nop()), ownerRequest(http.MethodGet, "/batch", "", "", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestToggleMediaRejectsNonInteger(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":1}`, "buyer", nil))

	rec := serve(ToggleMedia(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator/media/x", "", "buyer", map[string]string{"mediaRef": "x"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(ToggleMedia(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator/media/4", "", "buyer", map[string]string{"mediaRef": "4"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["media_ref"] != float64(4) || data["count"] != float64(1) {
		t.Fatalf("unexpected toggle %v", data)
	}

	rec = serve(ToggleMedia(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator/media/4", "", "buyer", map[string]string{"mediaRef": "4"}))
	if data := decodeData(t, rec); data["selected"] != false || data["count"] != float64(0) {
		t.Fatalf("expected deselect, got %v", data)
	}
}

func TestUpdateSelection(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":2}`, "buyer", nil))
	handler := UpdateSelection(reg, logger.Nop())

	rec := serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity":3,"packaging":"pop_top_tin","reseller_mark":"  north shop  "}`, "buyer", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["price_preview"] != "1140.00" {
		t.Fatalf("expected preview 1140.00, got %v", data["price_preview"])
	}
	sel, _ := data["selection"].(map[string]any)
	if sel["packaging"] != "pop_top_tin" || sel["reseller_mark"] != "north shop" {
		t.Fatalf("unexpected selection %v", sel)
	}

	rec = serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity_step":5}`, "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad step, got %d", rec.Code)
	}

	rec = serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"packaging":"cardboard"}`, "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown packaging, got %d", rec.Code)
	}

	rec = serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity_step":-1}`, "buyer", nil))
	sel, _ = decodeData(t, rec)["selection"].(map[string]any)
	if sel["quantity"] != float64(2) || sel["packaging"] != "pop_top_tin" {
		t.Fatalf("expected quantity 2 with packaging kept, got %v", sel)
	}
}

func TestUpdateSelectionBoundsQuantity(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":2}`, "buyer", nil))
	handler := UpdateSelection(reg, logger.Nop())

	rec := serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity":9223372036854775807,"quantity_step":1}`, "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized quantity, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity":10000}`, "buyer", nil))
	if data := decodeData(t, rec); data["price_preview"] != "3800000.00" {
		t.Fatalf("expected preview 3800000.00 at the cap, got %v", data["price_preview"])
	}

	rec = serve(handler, ownerRequest(http.MethodPatch, "/configurator/selection", `{"quantity_step":1}`, "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 stepping past the cap, got %d", rec.Code)
	}

	rec = serve(GetConfiguration(reg, logger.Nop()), ownerRequest(http.MethodGet, "/configurator", "", "buyer", nil))
	sel, _ := decodeData(t, rec)["selection"].(map[string]any)
	if sel["quantity"] != float64(10000) {
		t.Fatalf("expected quantity to stay at 10000, got %v", sel["quantity"])
	}
}

func TestCommitRequiresReviewStep(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":1}`, "buyer", nil))

	rec := serve(CommitConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator/commit", "", "buyer", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "STATE_CONFLICT" {
		t.Fatalf("expected STATE_CONFLICT, got %s", code)
	}
}

func TestAbandonConfiguration(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())
	serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":1}`, "buyer", nil))

	rec := serve(AbandonConfiguration(reg, logger.Nop()), ownerRequest(http.MethodDelete, "/configurator", "", "buyer", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = serve(StartConfiguration(reg, logger.Nop()), ownerRequest(http.MethodPost, "/configurator", `{"product_id":2}`, "buyer", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected new session after abandon, got %d", rec.Code)
	}
}

func TestRemoveBatchItem(t *testing.T) {
	reg, _ := newTestRegistry(t, orders.NewMemoryHistory())

	rec := serve(RemoveBatchItem(reg, logger.Nop()), ownerRequest(http.MethodDelete, "/batch/items/nope", "", "buyer", map[string]string{"itemId": "nope"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	id := uuid.NewString()
	rec = serve(RemoveBatchItem(reg, logger.Nop()), ownerRequest(http.MethodDelete, "/batch/items/"+id, "", "buyer", map[string]string{"itemId": id}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListOrdersAppliesLimit(t *testing.T) {
	history := orders.NewMemoryHistory()
	if _, err := orders.Seed(context.Background(), history, orders.DemoHistory("buyer")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	reg, _ := newTestRegistry(t, history)

	rec := serve(ListOrders(reg, logger.Nop()), ownerRequest(http.MethodGet, "/orders", "", "buyer", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["count"] != float64(len(orders.DemoHistory("buyer"))) {
		t.Fatalf("unexpected history %v", data)
	}

	rec = serve(ListOrders(reg, logger.Nop()), ownerRequest(http.MethodGet, "/orders?limit=1", "", "buyer", nil))
	if data := decodeData(t, rec); data["count"] != float64(1) {
		t.Fatalf("expected one order, got %v", data)
	}

	rec = serve(ListOrders(reg, logger.Nop()), ownerRequest(http.MethodGet, "/orders?limit=0", "", "buyer", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(ListOrders(reg, logger.Nop()), ownerRequest(http.MethodGet, "/orders", "", "someone-else", nil))
	if data := decodeData(t, rec); data["count"] != float64(0) {
		t.Fatalf("expected empty history for other owner, got %v", data)
	}
}

func TestGetCatalogProduct(t *testing.T) {
	_, reader := newTestRegistry(t, orders.NewMemoryHistory())

	rec := serve(GetCatalogProduct(reader, logger.Nop()), ownerRequest(http.MethodGet, "/catalog/1", "", "buyer", map[string]string{"productId": "1"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if data := decodeData(t, rec); data["name"] != "Red Apple Kush" || data["orderable"] != true {
		t.Fatalf("unexpected product %v", data)
	}

	rec = serve(GetCatalogProduct(reader, logger.Nop()), ownerRequest(http.MethodGet, "/catalog/0", "", "buyer", map[string]string{"productId": "0"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadySkipsNilDeps(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
	deps := map[string]Pinger{
		"db":     pingFunc(func(context.Context) error { return nil }),
		"pubsub": nil,
	}
	rec := serve(HealthReady(cfg, logger.Nop(), deps), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	checks, _ := decodeData(t, rec)["checks"].(map[string]any)
	if checks["db"] != "ok" {
		t.Fatalf("unexpected checks %v", checks)
	}
	if _, ok := checks["pubsub"]; ok {
		t.Fatal("nil dependency should be skipped")
	}
}

func TestHealthReadyReportsFailure(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvProd}}
	deps := map[string]Pinger{
		"redis": pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	}
	rec := serve(HealthReady(cfg, logger.Nop(), deps), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("X-BCF-Env") != config.AppEnvProd {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-BCF-Env"))
	}
}
