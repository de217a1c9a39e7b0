package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/mizuiro-games/gamedata/pkg/service"
	"github.com/mizuiro-games/gamedata/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(service.New(st), nil, []string{"*"})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error.Code
}

func TestRequestLogging(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := charmlog.NewWithOptions(&buf, charmlog.Options{Level: charmlog.InfoLevel})
	s := New(service.New(st), logger, []string{"*"})

	do(t, s, http.MethodGet, "/api/data/items", nil)

	out := buf.String()
	if !strings.Contains(out, "request") {
		t.Fatalf("log output = %q, want request line", out)
	}
	for _, field := range []string{"GET", "/api/data/items", "status=200"} {
		if !strings.Contains(out, field) {
			t.Errorf("log output = %q, missing %q", out, field)
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRootDescriptor(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
	decode(t, rec, &body)
	if body.Name != "Game Data Manager" {
		t.Errorf("name = %q", body.Name)
	}
	// Eight collections plus validation and graph entries.
	if len(body.Endpoints) != 10 {
		t.Errorf("endpoints = %v, want 10 entries", body.Endpoints)
	}
	if body.Endpoints["items"] != "/api/data/items" {
		t.Errorf("items endpoint = %q", body.Endpoints["items"])
	}
}

func TestListEmptyCollection(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/data/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var records []map[string]any
	decode(t, rec, &records)
	if len(records) != 0 {
		t.Errorf("records = %v", records)
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/data/items", map[string]any{
		"id":          "item_scope",
		"displayName": "望遠レンズ",
		"type":        "Material",
		"rarity":      "Star1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/api/data/items/item_scope", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var item map[string]any
	decode(t, rec, &item)
	if item["displayName"] != "望遠レンズ" {
		t.Errorf("displayName = %v", item["displayName"])
	}
}

func TestCreateValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/data/items", map[string]any{
		"id":       "bad",
		"type":     "not_a_type",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "VALIDATION_FAILED" {
		t.Errorf("code = %q", code)
	}
}

func TestDuplicateCreate(t *testing.T) {
	s := newTestServer(t)
	item := map[string]any{"id": "dup", "displayName": "x", "type": "Material", "rarity": "Star1"}

	if rec := do(t, s, http.MethodPost, "/api/data/items", item); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}
	rec := do(t, s, http.MethodPost, "/api/data/items", item)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second create status = %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "DUPLICATE_ID" {
		t.Errorf("code = %q", code)
	}
}

func TestUnknownCollection(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/data/characters", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_COLLECTION" {
		t.Errorf("code = %q", code)
	}
}

func TestGetMissingRecord(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/data/items/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	item := map[string]any{"id": "i1", "displayName": "before", "type": "Material", "rarity": "Star1"}
	if rec := do(t, s, http.MethodPost, "/api/data/items", item); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	item["displayName"] = "after"
	rec := do(t, s, http.MethodPut, "/api/data/items/i1", item)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	decode(t, rec, &updated)
	if updated["displayName"] != "after" {
		t.Errorf("displayName = %v", updated["displayName"])
	}

	rec = do(t, s, http.MethodDelete, "/api/data/items/i1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/api/data/items/i1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestBulkCreate(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/data/items/bulk", []map[string]any{
		{"id": "a", "displayName": "A", "type": "Material", "rarity": "Star1"},
		{"id": "b", "displayName": "B", "type": "Material", "rarity": "Star1"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var created []map[string]any
	decode(t, rec, &created)
	if len(created) != 2 {
		t.Fatalf("created %d records", len(created))
	}
	if created[0]["id"] != "a" || created[1]["id"] != "b" {
		t.Errorf("created = %+v", created)
	}
}

func TestValidationReferencesEndpoint(t *testing.T) {
	s := newTestServer(t)
	upgrade := map[string]any{
		"id":                   "u1",
		"displayName":          "Zoom",
		"upgradeType":          "Click_FlatAdd",
		"category":             "Click",
		"requiredUnlockItemId": "missing_item",
	}
	if rec := do(t, s, http.MethodPost, "/api/data/upgrades", upgrade); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(t, s, http.MethodGet, "/api/data/validation/references", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report map[string][]struct {
		Source    string `json:"source"`
		Field     string `json:"field"`
		MissingID string `json:"missing_id"`
	}
	decode(t, rec, &report)
	if len(report) != 6 {
		t.Fatalf("report has %d categories", len(report))
	}
	got := report["missing_items"]
	if len(got) != 1 || got[0].Source != "upgrade:u1" || got[0].MissingID != "missing_item" {
		t.Errorf("report = %+v", report)
	}
	if len(report["missing_upgrades"]) != 0 {
		t.Errorf("missing_upgrades = %+v", report["missing_upgrades"])
	}
}

func TestGraphEndpoint(t *testing.T) {
	s := newTestServer(t)
	banner := map[string]any{
		"bannerId":   "b1",
		"bannerName": "Debut",
		"pool":       []map[string]any{{"itemId": "i1", "weight": 10}},
	}
	if rec := do(t, s, http.MethodPost, "/api/data/gacha_banners", banner); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(t, s, http.MethodGet, "/api/data/graph/dependencies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var g struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
			Type string `json:"type"`
		} `json:"edges"`
	}
	decode(t, rec, &g)
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "gacha:b1" {
		t.Errorf("nodes = %+v", g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].To != "item:i1" || g.Edges[0].Type != "contains" {
		t.Errorf("edges = %+v", g.Edges)
	}
}

func TestGraphDOTEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/data/graph/dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("digraph dependencies")) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestServer(t)
	item := map[string]any{"id": "i1", "displayName": "A", "type": "Material", "rarity": "Star1"}
	if rec := do(t, s, http.MethodPost, "/api/data/items", item); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/api/data/export/all", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	var payload map[string][]map[string]any
	decode(t, rec, &payload)
	if len(payload) != 8 {
		t.Errorf("export has %d types", len(payload))
	}

	other := newTestServer(t)
	rec = do(t, other, http.MethodPost, "/api/data/import/all", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}
	var counts map[string]int
	decode(t, rec, &counts)
	if counts["items"] != 1 {
		t.Errorf("imported = %v", counts)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/data/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
