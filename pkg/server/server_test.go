package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/httputil"
	"github.com/matzehuels/pinboard/pkg/pipeline"
	"github.com/matzehuels/pinboard/pkg/store"
	"github.com/matzehuels/pinboard/pkg/variant"
)

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(Options{
		Pipeline: pipeline.NewRunner(c, nil, logger),
		Store:    st,
		Logger:   logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func designPath(t *testing.T, choices ...int) string {
	t.Helper()
	id, err := variant.Rank(choices)
	if err != nil {
		t.Fatal(err)
	}
	return "/" + strconv.Itoa(len(choices)) + "/" + strconv.Itoa(id)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["version"] == "" {
		t.Errorf("body = %v, want a version", body)
	}
	if resp.Header.Get(httputil.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestVariantCounts(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		pins      int
		total     int
		populated int
	}{
		{2, 5, 5},
		{3, 38, 28},
		{4, 251, 155},
		{5, 1628, 859},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.pins), func(t *testing.T) {
			resp := get(t, srv, "/variants/"+strconv.Itoa(tt.pins))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var body CountsResponse
			decode(t, resp, &body)
			if body.PinCount != tt.pins || body.Total != tt.total || body.FullyPopulated != tt.populated {
				t.Errorf("body = %+v, want total %d populated %d", body, tt.total, tt.populated)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"/variants/x", http.StatusBadRequest, errors.ErrCodeInvalidPinCount},
		{"/variants/0", http.StatusBadRequest, errors.ErrCodeInvalidPinCount},
		{"/variants/3/-1", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/variants/3/38", http.StatusNotFound, errors.ErrCodeVariantOutOfRange},
		{"/designs/4/400", http.StatusNotFound, errors.ErrCodeVariantOutOfRange},
		{"/designs/3/1?max_iterations=lots", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/designs/3/1?refresh=maybe", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/stored/3", http.StatusNotImplemented, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv, tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body httputil.ErrorBody
			decode(t, resp, &body)
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestVariantPlan(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv, "/variants"+designPath(t, 4, 0, 0))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body PlanResponse
	decode(t, resp, &body)
	if len(body.Applications) != 1 || body.Applications[0].TargetPin != 1 {
		t.Errorf("applications = %+v, want one on pin 1", body.Applications)
	}
	if len(body.Choices) != 3 || body.Choices[0] != 4 {
		t.Errorf("choices = %v, want [4 0 0]", body.Choices)
	}
	if len(body.UsedDimensions) != 3 {
		t.Errorf("used dimensions = %v, want one entry per pin", body.UsedDimensions)
	}
}

func TestDesign(t *testing.T) {
	srv := newTestServer(t, nil)
	path := "/designs" + designPath(t, 4, 0, 0)

	var first DesignResponse
	decode(t, get(t, srv, path), &first)
	if first.Design == nil || first.Status != pipeline.StatusSolved {
		t.Fatalf("design = %+v, want solved", first.Design)
	}
	if first.Cached {
		t.Error("first request should not be cached")
	}
	if first.Collisions.HasCollisions {
		t.Errorf("solved design reports collisions: %+v", first.Collisions)
	}
	if !strings.Contains(first.Code, "<board routingDisabled>") {
		t.Errorf("code = %q", first.Code)
	}

	var second DesignResponse
	decode(t, get(t, srv, path), &second)
	if !second.Cached {
		t.Error("second request should hit the cache")
	}

	var refreshed DesignResponse
	decode(t, get(t, srv, path+"?refresh=true"), &refreshed)
	if refreshed.Cached {
		t.Error("refresh should bypass the cache")
	}
}

func TestDesign_Unsolved(t *testing.T) {
	srv := newTestServer(t, nil)

	var body DesignResponse
	decode(t, get(t, srv, "/designs"+designPath(t, 0, 1, 1)+"?max_iterations=1"), &body)
	if body.Design == nil || body.Status != pipeline.StatusUnsolved {
		t.Fatalf("design = %+v, want unsolved", body.Design)
	}
	if !body.Collisions.HasCollisions {
		t.Error("unsolved design should report its canonical collisions")
	}
}

func TestNetlistSVG(t *testing.T) {
	srv := newTestServer(t, nil)
	path := "/designs" + designPath(t, 4, 0, 0) + "/netlist.svg"

	tests := []string{"MISS", "HIT"}
	for _, want := range tests {
		resp := get(t, srv, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if got := resp.Header.Get("X-Cache"); got != want {
			t.Errorf("X-Cache = %q, want %q", got, want)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("Content-Type = %q", ct)
		}
		data, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(data), "<svg") {
			t.Errorf("body is not svg: %.80s", data)
		}
	}
}

func TestLayoutSVG(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv, "/designs"+designPath(t, 4, 0, 0)+"/layout.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("body is not svg: %.80s", data)
	}
}

func TestLayoutSVG_Filtered(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv, "/designs"+designPath(t, 0, 0, 1)+"/layout.svg?filter=true")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStored(t *testing.T) {
	st, err := store.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	rec := &store.Record{Design: pipeline.Design{PinCount: 2, Variant: 3, Status: pipeline.StatusSolved}}
	if err := st.Put(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, st)

	var got []store.Record
	decode(t, get(t, srv, "/stored/2"), &got)
	if len(got) != 1 || got[0].Variant != 3 {
		t.Errorf("stored = %+v, want variant 3", got)
	}

	var empty []store.Record
	resp := get(t, srv, "/stored/3")
	decode(t, resp, &empty)
	if resp.StatusCode != http.StatusOK || len(empty) != 0 {
		t.Errorf("stored/3 = %d %+v, want empty list", resp.StatusCode, empty)
	}
}
