package xrhttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xrcaps/pkg/cache"
	"github.com/dmitrymomot/xrcaps/pkg/capability"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
	"github.com/dmitrymomot/xrcaps/pkg/xrhttp"
)

const (
	uaIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	uaQuest3 = "Mozilla/5.0 (X11; Linux x86_64; Quest 3) AppleWebKit/537.36 (KHTML, like Gecko) OculusBrowser/35.0.0.2.79 SamsungBrowser/4.0 Chrome/126.0.0.0 VR Safari/537.36"
)

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *xrhttp.ErrorDetail `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestDetect_IPhoneReport(t *testing.T) {
	t.Parallel()
	h := xrhttp.New()

	body := `{
		"userAgent": "` + uaIPhone + `",
		"touch": true,
		"mediaDevices": {"permission": "prompt", "devices": [{"kind": "videoinput", "label": ""}]},
		"xr": {"immersiveAr": true, "immersiveVr": false, "inline": true}
	}`

	rec, env := do(t, h, http.MethodPost, "/v1/capabilities", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	var res xrhttp.Result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, xrdevice.CategoryMobile, res.Snapshot.DeviceCategory)
	assert.True(t, res.Snapshot.Camera.HasRearCamera)
	assert.Equal(t, xrdevice.ModeAR, res.Recommendation.RecommendedMode)
	assert.True(t, res.Recommendation.CanScanRoom)
	assert.Contains(t, res.Recommendation.Features, capability.FeatureCameraRoomScanning)
	assert.Equal(t, "iPhone", res.Description)
	assert.Equal(t, false, env.Meta["cached"])
	assert.Len(t, env.Meta["fingerprint"], 32)

	rec, env = do(t, h, http.MethodPost, "/v1/capabilities", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Meta["cached"])

	var again xrhttp.Result
	require.NoError(t, json.Unmarshal(env.Data, &again))
	assert.NotEqual(t, res.Snapshot.ID, again.Snapshot.ID)
	assert.False(t, again.Snapshot.Timestamp.Before(res.Snapshot.Timestamp))
	assert.Equal(t, res.Snapshot.Camera, again.Snapshot.Camera)
	assert.Equal(t, res.Recommendation, again.Recommendation)
}

func TestDetect_DeviceLabelsDoNotShareCache(t *testing.T) {
	t.Parallel()
	h := xrhttp.New()
	ctx := context.Background()

	spliced := capability.Report{
		UserAgent: uaIPhone,
		MediaDevices: &capability.MediaReport{Devices: []capability.MediaDevice{
			{Kind: "audioinput", Label: "Mic:videoinput=Back Camera"},
		}},
	}
	separate := capability.Report{
		UserAgent: uaIPhone,
		MediaDevices: &capability.MediaReport{Devices: []capability.MediaDevice{
			{Kind: "audioinput", Label: "Mic"},
			{Kind: capability.KindVideoInput, Label: "Back Camera"},
		}},
	}

	first, cached, err := h.Detect(ctx, spliced)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.False(t, first.Snapshot.Camera.HasCamera)

	second, cached, err := h.Detect(ctx, separate)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.True(t, second.Snapshot.Camera.HasCamera)
	assert.True(t, second.Snapshot.Camera.HasRearCamera)
}

func TestSetCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := xrhttp.New(xrhttp.WithLogger(newJSONLogger(&buf)))
	ctx := context.Background()
	report := capability.Report{UserAgent: "Mozilla/5.0 (Linux; Android 13; LabGlasses) Chrome/120.0.0.0"}

	before, _, err := h.Detect(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, xrdevice.KeyUnknown, before.Snapshot.KnownDevice)

	catalog, err := xrdevice.New("lab-1",
		xrdevice.Profile{Key: "lab-glasses", Name: "Lab Glasses", Category: xrdevice.CategoryARGlasses, HasPassthrough: true, RecommendedMode: xrdevice.ModeAR, Patterns: []string{"LabGlasses"}},
		xrdevice.Profile{Key: xrdevice.KeyUnknown, Name: "Unknown Device", Category: xrdevice.CategoryUnknown},
	)
	require.NoError(t, err)

	h.SetCatalog(catalog)
	h.SetCatalog(nil)
	assert.Same(t, catalog, h.Catalog())
	assert.Contains(t, buf.String(), `"msg":"device catalog replaced"`)

	_, env := do(t, h, http.MethodGet, "/health", "", nil)
	var health struct {
		CatalogVersion string      `json:"catalogVersion"`
		Cache          cache.Stats `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "lab-1", health.CatalogVersion)
	assert.Zero(t, health.Cache.Size)
	assert.Equal(t, uint64(1), health.Cache.Evictions)

	after, cached, err := h.Detect(ctx, report)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "lab-glasses", after.Snapshot.KnownDevice)
	assert.Equal(t, "Lab Glasses", after.Description)

	rec, env := do(t, h, http.MethodGet, "/v1/devices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lab-1", env.Meta["version"])
	assert.Equal(t, float64(2), env.Meta["count"])
}

func TestDetect_FallsBackToRequestUserAgent(t *testing.T) {
	t.Parallel()
	h := xrhttp.New()

	rec, env := do(t, h, http.MethodPost, "/v1/capabilities", `{}`, map[string]string{"User-Agent": uaQuest3})
	require.Equal(t, http.StatusOK, rec.Code)

	var res xrhttp.Result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "meta-quest-3", res.Snapshot.KnownDevice)
	assert.Equal(t, "Meta Quest 3", res.Description)
	assert.Equal(t, capability.ProbeUnavailable, res.Snapshot.Diagnostics.XR.Status)
}

func TestDetect_RejectsBadReports(t *testing.T) {
	t.Parallel()

	devices := make([]capability.MediaDevice, 65)
	for i := range devices {
		devices[i] = capability.MediaDevice{Kind: capability.KindVideoInput}
	}
	tooMany, err := json.Marshal(capability.Report{MediaDevices: &capability.MediaReport{Devices: devices}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		h      http.Handler
		body   string
		status int
		code   string
	}{
		{"malformed json", xrhttp.New(), `{"userAgent":`, http.StatusBadRequest, "bad_request"},
		{"too many devices", xrhttp.New(), string(tooMany), http.StatusUnprocessableEntity, "unprocessable_entity"},
		{"body too large", xrhttp.New(xrhttp.WithMaxBodyBytes(16)), `{"userAgent": "` + uaIPhone + `"}`, http.StatusRequestEntityTooLarge, "payload_too_large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, env := do(t, tt.h, http.MethodPost, "/v1/capabilities", tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestDevices(t *testing.T) {
	t.Parallel()
	h := xrhttp.New()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		rec, env := do(t, h, http.MethodGet, "/v1/devices", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var profiles []xrdevice.Profile
		require.NoError(t, json.Unmarshal(env.Data, &profiles))
		assert.Len(t, profiles, xrdevice.Default().Len())
		assert.Equal(t, xrdevice.Default().Version(), env.Meta["version"])
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		rec, env := do(t, h, http.MethodGet, "/v1/devices/rokid-station-2", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var p xrdevice.Profile
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, "Rokid Station 2", p.Name)
		assert.Equal(t, xrdevice.ModeAR, p.RecommendedMode)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		rec, env := do(t, h, http.MethodGet, "/v1/devices/no-such-device", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "not_found", env.Error.Code)
		assert.Contains(t, env.Error.Message, "no-such-device")
	})
}

func TestPlatformEndpoint(t *testing.T) {
	t.Parallel()

	rec, env := do(t, xrhttp.New(), http.MethodGet, "/v1/platform", "", map[string]string{"User-Agent": uaIPhone})
	require.Equal(t, http.StatusOK, rec.Code)

	var p struct {
		OS       string `json:"os"`
		IsMobile bool   `json:"isMobile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "ios", p.OS)
	assert.True(t, p.IsMobile)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec, env := do(t, xrhttp.New(), http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, xrdevice.Default().Version(), body["catalogVersion"])
}

func TestRouting_Errors(t *testing.T) {
	t.Parallel()
	h := xrhttp.New()

	rec, env := do(t, h, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)

	rec, env = do(t, h, http.MethodDelete, "/v1/devices", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "method_not_allowed", env.Error.Code)
}

func TestHandler_AccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newJSONLogger(&buf)
	h := xrhttp.New(xrhttp.WithLogger(log))

	rec, _ := do(t, h, http.MethodGet, "/health", "", map[string]string{xrhttp.RequestIDHeader: "req-42"})
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"msg":"http request"`)
	assert.Contains(t, out, `"path":"/health"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"component":"xrhttp"`)
}
