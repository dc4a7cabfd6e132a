package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Probe records the probe name under the key "probe".
func Probe(name string) slog.Attr {
	return slog.String("probe", name)
}

// DeviceKey records a catalog device key under the key "device".
func DeviceKey(key string) slog.Attr {
	return slog.String("device", key)
}

// SnapshotID records a capability snapshot identifier under the key "snapshot_id".
// If id is nil, it returns an empty Attr.
func SnapshotID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("snapshot_id", id)
}
