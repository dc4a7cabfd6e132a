package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xrcaps/internal/cli"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

const uaQuest2 = "Mozilla/5.0 (X11; Linux x86_64; Quest 2) AppleWebKit/537.36 (KHTML, like Gecko) OculusBrowser/31.0.0.5.45 SamsungBrowser/4.0 Chrome/120.0.0.0 VR Safari/537.36"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDevices_JSON(t *testing.T) {
	out, err := run(t, "devices", "--json")
	require.NoError(t, err)

	var got struct {
		Version string             `json:"version"`
		Devices []xrdevice.Profile `json:"devices"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, xrdevice.Default().Version(), got.Version)
	assert.Len(t, got.Devices, xrdevice.Default().Len())
}

func TestDevices_Table(t *testing.T) {
	out, err := run(t, "devices")
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "meta-quest-3")
	assert.Contains(t, out, "passthrough,hands,camera,room-scan")
}

func TestDevices_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "test-1"
devices:
  - key: unknown
    name: Unknown Device
    category: unknown
  - key: lab-visor
    name: Lab Visor
    category: vr-headset
    passthrough: true
    mode: ar
    patterns: ["LabVisor"]
`), 0o600))

	out, err := run(t, "devices", "--catalog", path, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"test-1"`)
	assert.Contains(t, out, `"lab-visor"`)
	assert.NotContains(t, out, "meta-quest-3")
}

func TestRoot_MissingCatalog(t *testing.T) {
	_, err := run(t, "devices", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, xrdevice.ErrReadCatalog)
}

func TestDetect_JSON(t *testing.T) {
	out, err := run(t, "detect", "--json", "--ua", uaQuest2, "--vr", "--inline", "--permission", "granted", "--camera-label", "Passthrough Camera")
	require.NoError(t, err)

	var got struct {
		Description    string `json:"description"`
		Recommendation struct {
			RecommendedMode string   `json:"recommendedMode"`
			Features        []string `json:"features"`
		} `json:"recommendation"`
		Snapshot struct {
			KnownDevice string `json:"knownDevice"`
			Loading     bool   `json:"isLoading"`
			Camera      struct {
				HasCamera       bool   `json:"hasCamera"`
				PermissionState string `json:"permissionState"`
			} `json:"camera"`
			XR struct {
				SupportsImmersiveVR bool `json:"supportsImmersiveVR"`
			} `json:"xr"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Meta Quest 2", got.Description)
	assert.Equal(t, "meta-quest-2", got.Snapshot.KnownDevice)
	assert.False(t, got.Snapshot.Loading)
	assert.True(t, got.Snapshot.Camera.HasCamera)
	assert.Equal(t, "granted", got.Snapshot.Camera.PermissionState)
	assert.True(t, got.Snapshot.XR.SupportsImmersiveVR)
	assert.Equal(t, "vr", got.Recommendation.RecommendedMode)
}

func TestDetect_HandTracking(t *testing.T) {
	const uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

	out, err := run(t, "detect", "--json", "--ua", uaDesktop, "--vr", "--hands")
	require.NoError(t, err)

	var got struct {
		Recommendation struct {
			CanUseHandTracking bool     `json:"canUseHandTracking"`
			Features           []string `json:"features"`
		} `json:"recommendation"`
		Snapshot struct {
			XR struct {
				SupportsHandTracking bool `json:"supportsHandTracking"`
			} `json:"xr"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Snapshot.XR.SupportsHandTracking)
	assert.True(t, got.Recommendation.CanUseHandTracking)
	assert.Contains(t, got.Recommendation.Features, "Hand Tracking")

	out, err = run(t, "detect", "--ua", uaDesktop, "--vr", "--hands")
	require.NoError(t, err)
	assert.Contains(t, out, "hands yes")

	_, err = run(t, "detect", "--no-xr", "--hands")
	require.Error(t, err)
}

func TestDetect_Table(t *testing.T) {
	out, err := run(t, "detect", "--ua", uaQuest2, "--no-media", "--no-xr")
	require.NoError(t, err)

	assert.Contains(t, out, "Meta Quest 2")
	assert.Contains(t, out, "Meta Quest Browser")
	assert.Contains(t, out, "Camera:")
	assert.Contains(t, out, "vr")
}

func TestDetect_InvalidPermission(t *testing.T) {
	_, err := run(t, "detect", "--permission", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe")
}

func TestDetect_ConflictingFlags(t *testing.T) {
	_, err := run(t, "detect", "--no-xr", "--ar")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, cli.Version, got["version"])
	assert.Equal(t, xrdevice.Default().Version(), got["catalog_version"])
	assert.NotEmpty(t, got["go_version"])

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xrcaps "+cli.Version)
}
