package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"uniquelist/internal/config"
	"uniquelist/pkg/metrics"
)

func newTestServer(t *testing.T) (*httptest.Server, *metrics.Registry) {
	t.Helper()
	registry := metrics.NewRegistry()
	s := NewServer(config.Default(), registry)
	ts := httptest.NewServer(s.createRouter())
	t.Cleanup(ts.Close)
	return ts, registry
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func createList(t *testing.T, ts *httptest.Server, kind string) string {
	t.Helper()
	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/lists", map[string]any{"kind": kind})
	if status != http.StatusCreated {
		t.Fatalf("create returned %d: %v", status, resp)
	}
	data := resp["data"].(map[string]any)
	return data["id"].(string)
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	status, resp := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	if status != http.StatusOK {
		t.Fatalf("health returned %d", status)
	}
	if resp["status"] != string(StatusOK) {
		t.Fatalf("unexpected health response: %v", resp)
	}
}

func TestArrayCollectionFlow(t *testing.T) {
	ts, registry := newTestServer(t)
	id := createList(t, ts, "array")
	itemsURL := fmt.Sprintf("%s/api/lists/%s/items", ts.URL, id)

	t.Run("PushNew", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodPost, itemsURL, map[string]any{"values": []float64{2.9, -1.0, 4.9}})
		if status != http.StatusOK {
			t.Fatalf("push returned %d: %v", status, resp)
		}
		data := resp["data"].(map[string]any)
		if data["index"].(float64) != 0 || data["new"].(bool) != true {
			t.Fatalf("unexpected push result: %v", data)
		}
	})

	t.Run("PushSecond", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodPost, itemsURL, map[string]any{"values": []float64{3.4, 1.0, 4.9}})
		if status != http.StatusOK {
			t.Fatalf("push returned %d: %v", status, resp)
		}
	})

	t.Run("PushDuplicateWithinTolerance", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodPost, itemsURL, map[string]any{"values": []float64{3.4, 1.0, 4.8999999999}})
		if status != http.StatusOK {
			t.Fatalf("push returned %d: %v", status, resp)
		}
		data := resp["data"].(map[string]any)
		if data["index"].(float64) != 1 || data["new"].(bool) != false {
			t.Fatalf("unexpected push result: %v", data)
		}
	})

	t.Run("Contains", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/lists/%s/contains", ts.URL, id)
		status, resp := doJSON(t, http.MethodPost, url, map[string]any{"values": []float64{2.9, -1.0, 4.9}})
		if status != http.StatusOK {
			t.Fatalf("contains returned %d: %v", status, resp)
		}
		data := resp["data"].(map[string]any)
		if data["member"].(bool) != true {
			t.Fatalf("expected member, got %v", data)
		}
	})

	t.Run("RejectMatrix", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodPost, itemsURL, map[string]any{
			"values": []float64{1, 2, 3, 4},
			"shape":  []int{2, 2},
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %v", status, resp)
		}
	})

	t.Run("EraseFlaggedSizeMismatch", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/lists/%s/erase-flagged", ts.URL, id)
		status, resp := doJSON(t, http.MethodPost, url, map[string]any{"flags": []int{1}})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %v", status, resp)
		}
	})

	t.Run("EraseMany", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/lists/%s/erase", ts.URL, id)
		status, resp := doJSON(t, http.MethodPost, url, map[string]any{"indexes": []int{0}})
		if status != http.StatusOK {
			t.Fatalf("erase returned %d: %v", status, resp)
		}
	})

	t.Run("State", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/lists/%s/", ts.URL, id)
		status, resp := doJSON(t, http.MethodGet, url, nil)
		if status != http.StatusOK {
			t.Fatalf("get returned %d: %v", status, resp)
		}
		data := resp["data"].(map[string]any)
		if data["size"].(float64) != 1 {
			t.Fatalf("expected size 1, got %v", data["size"])
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		snap := registry.Snapshot()
		if snap[metrics.CounterPushes] == 0 {
			t.Fatal("expected pushes to be counted")
		}
		if snap[metrics.CounterDuplicates] != 1 {
			t.Fatalf("expected 1 duplicate, got %d", snap[metrics.CounterDuplicates])
		}
	})
}

func TestIntCollectionFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createList(t, ts, "int")
	itemsURL := fmt.Sprintf("%s/api/lists/%s/items", ts.URL, id)

	for i, v := range []int{2, 1, 2} {
		status, resp := doJSON(t, http.MethodPost, itemsURL, map[string]any{"value": v})
		if status != http.StatusOK {
			t.Fatalf("push %d returned %d: %v", i, status, resp)
		}
	}

	url := fmt.Sprintf("%s/api/lists/%s/", ts.URL, id)
	status, resp := doJSON(t, http.MethodGet, url, nil)
	if status != http.StatusOK {
		t.Fatalf("get returned %d: %v", status, resp)
	}
	data := resp["data"].(map[string]any)
	if data["size"].(float64) != 2 {
		t.Fatalf("expected size 2, got %v", data["size"])
	}
}

func TestCollectionLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createList(t, ts, "array")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/lists", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d: %v", status, resp)
	}
	infos := resp["data"].([]any)
	if len(infos) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(infos))
	}

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/lists/%s/", ts.URL, id), nil)
	if status != http.StatusOK {
		t.Fatalf("delete returned %d", status)
	}

	status, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/lists/%s/", ts.URL, id), nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestUnknownCollection(t *testing.T) {
	ts, _ := newTestServer(t)
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/lists/nope/items", map[string]any{"value": 1})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestUnknownKind(t *testing.T) {
	ts, _ := newTestServer(t)
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/lists", map[string]any{"kind": "matrix"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}
