package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, rolls ...int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lc, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	m := service.NewManager(lc, nil, func() service.Options {
		return service.Options{
			Rng:       rand.New(rand.NewSource(3)),
			Roller:    dice.NewScript(rolls...),
			Modifiers: dice.FixedModifier(0),
		}
	})
	return NewRouter(NewSessionHandler(m, lc))
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w, out := do(t, r, http.MethodPost, "/api/sessions", map[string]string{"name": "vessel"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	id, _ := out["session_id"].(string)
	if id == "" {
		t.Fatalf("expected session id, got %v", out)
	}
	return id
}

func TestCraftFlow(t *testing.T) {
	r := newTestRouter(t, 15)
	id := createSession(t, r)
	base := "/api/sessions/" + id

	w, out := do(t, r, http.MethodPost, base+"/harvest", map[string]interface{}{
		"source": "terminal_extracts", "amount": 150,
	})
	if w.Code != http.StatusOK || out["amount"].(float64) != 150 {
		t.Fatalf("harvest: %d %s", w.Code, w.Body.String())
	}

	w, out = do(t, r, http.MethodPost, base+"/craft", map[string]interface{}{
		"elements":  []string{"fire"},
		"code_bits": []string{"damage"},
		"character": map[string]interface{}{"name": "Ada", "level": 5},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("craft: %d %s", w.Code, w.Body.String())
	}
	if out["success"] != true || out["outcome"] != "known_success" || out["quality_tier"] != "high" {
		t.Fatalf("unexpected craft result: %v", out)
	}

	w, out = do(t, r, http.MethodGet, base, nil)
	if w.Code != http.StatusOK || out["balance"].(float64) != 50 || out["total_crafts"].(float64) != 1 {
		t.Fatalf("unexpected status: %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodGet, base+"/history", nil)
	var history []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil || len(history) != 1 {
		t.Fatalf("expected one spell in history: %s", w.Body.String())
	}
}

func TestCraftValidationIsBadRequest(t *testing.T) {
	r := newTestRouter(t, 15)
	id := createSession(t, r)
	w, out := do(t, r, http.MethodPost, "/api/sessions/"+id+"/craft", map[string]interface{}{
		"elements":  []string{"fire"},
		"code_bits": []string{},
		"character": map[string]interface{}{"level": 5},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
	if out["success"] != false || out["outcome"] != "rejected" || out["error"] == "" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestCraftInsufficientDataIsPaymentRequired(t *testing.T) {
	r := newTestRouter(t, 15)
	id := createSession(t, r)
	w, out := do(t, r, http.MethodPost, "/api/sessions/"+id+"/craft", map[string]interface{}{
		"elements":  []string{"fire"},
		"code_bits": []string{"damage"},
		"character": map[string]interface{}{"level": 5},
	})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d %s", w.Code, w.Body.String())
	}
	if out["message"] != "Insufficient data. Need 100, have 0." {
		t.Fatalf("unexpected message: %v", out["message"])
	}
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)
	base := "/api/sessions/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"unknown session", http.MethodGet, "/api/sessions/nope", nil, http.StatusNotFound},
		{"enemy harvest without surveillance", http.MethodPost, base + "/harvest", map[string]interface{}{"source": "enemy_surveillance", "enemy_level": 3}, http.StatusConflict},
		{"unknown source", http.MethodPost, base + "/harvest", map[string]interface{}{"source": "dreams"}, http.StatusBadRequest},
		{"negative harvest", http.MethodPost, base + "/harvest", map[string]interface{}{"source": "mined_bitcoin", "amount": -1}, http.StatusBadRequest},
		{"unknown item", http.MethodPost, base + "/items", map[string]string{"item": "toaster"}, http.StatusBadRequest},
		{"no warden", http.MethodPost, base + "/warden", nil, http.StatusConflict},
		{"unknown ally", http.MethodGet, base + "/allies/ally_x", nil, http.StatusNotFound},
		{"bad level", http.MethodGet, base + "/spells?level=0", nil, http.StatusBadRequest},
		{"unknown registry", http.MethodGet, "/api/registry/potions", nil, http.StatusNotFound},
		{"save without storage", http.MethodPost, base + "/save", nil, http.StatusNotImplemented},
		{"import bad version", http.MethodPost, base + "/import", map[string]interface{}{"version": 7}, http.StatusBadRequest},
		{"import negative balance", http.MethodPost, base + "/import", map[string]interface{}{
			"version": 1, "ledger": map[string]int{"total_data": -50}, "discovery": map[string]int{"library_version": 1},
		}, http.StatusBadRequest},
		{"import library version zero", http.MethodPost, base + "/import", map[string]interface{}{"version": 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestSurveillanceEnablesEnemyHarvest(t *testing.T) {
	r := newTestRouter(t)
	base := "/api/sessions/" + createSession(t, r)
	if w, _ := do(t, r, http.MethodPost, base+"/surveillance", nil); w.Code != http.StatusOK {
		t.Fatalf("surveillance: %d", w.Code)
	}
	w, out := do(t, r, http.MethodPost, base+"/harvest", map[string]interface{}{
		"source": "enemy_surveillance", "enemy_level": 4, "efficiency": 0.5,
	})
	if w.Code != http.StatusOK || out["amount"].(float64) != 20 {
		t.Fatalf("enemy harvest: %d %s", w.Code, w.Body.String())
	}
}

func TestSummonAndBattle(t *testing.T) {
	r := newTestRouter(t, 15)
	base := "/api/sessions/" + createSession(t, r)
	do(t, r, http.MethodPost, base+"/harvest", map[string]interface{}{"source": "mined_bitcoin", "amount": 250})

	w, out := do(t, r, http.MethodPost, base+"/summon", map[string]interface{}{
		"elements":  []string{"fire"},
		"code_bits": []string{"summon"},
		"character": map[string]interface{}{"name": "Ada", "level": 5},
	})
	if w.Code != http.StatusOK || out["success"] != true {
		t.Fatalf("summon: %d %s", w.Code, w.Body.String())
	}
	ally := out["entity"].(map[string]interface{})
	allyID := ally["id"].(string)

	w, out = do(t, r, http.MethodPost, base+"/allies/"+allyID+"/battle", map[string]interface{}{
		"damage_dealt": 10, "damage_received": 3, "victory": true,
	})
	if w.Code != http.StatusOK || out["hp"].(float64) != ally["hp"].(float64)-3 {
		t.Fatalf("battle: %d %s", w.Code, w.Body.String())
	}

	w, out = do(t, r, http.MethodGet, base+"/allies", nil)
	if w.Code != http.StatusOK || len(out["active"].([]interface{})) != 1 || out["summon_count"].(float64) != 1 {
		t.Fatalf("allies: %d %s", w.Code, w.Body.String())
	}

	if w, _ = do(t, r, http.MethodDelete, base+"/allies/"+allyID, nil); w.Code != http.StatusOK {
		t.Fatalf("dismiss: %d", w.Code)
	}
	_, out = do(t, r, http.MethodGet, base+"/allies", nil)
	if len(out["active"].([]interface{})) != 0 || len(out["history"].([]interface{})) != 1 {
		t.Fatalf("dismissed ally should remain in history only: %v", out)
	}
}

func TestRegistryAndVersion(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/api/registry/elements", nil)
	var elements []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &elements); err != nil || len(elements) != 13 {
		t.Fatalf("expected 13 elements, got %s", w.Body.String())
	}
	w, _ = do(t, r, http.MethodGet, "/api/registry/spells", nil)
	var spells []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &spells); err != nil || len(spells) != 8 {
		t.Fatalf("expected 8 spells, got %s", w.Body.String())
	}
	w, out := do(t, r, http.MethodGet, "/api/version", nil)
	if w.Code != http.StatusOK || out["version"] == nil {
		t.Fatalf("version: %d %s", w.Code, w.Body.String())
	}
}

func TestExportImportOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	src := "/api/sessions/" + createSession(t, r)
	do(t, r, http.MethodPost, src+"/harvest", map[string]interface{}{"source": "mined_bitcoin", "amount": 75})

	w, _ := do(t, r, http.MethodGet, src+"/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	var state map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}

	dst := "/api/sessions/" + createSession(t, r)
	w, out := do(t, r, http.MethodPost, dst+"/import", state)
	if w.Code != http.StatusOK || out["balance"].(float64) != 75 {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}
}
