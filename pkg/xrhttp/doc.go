// Package xrhttp exposes the capability engine over HTTP.
//
// Browsers run the camera and XR probes locally and POST the raw results as a
// capability.Report. The handler replays the report through the same
// capability.Detector used in-process and answers with the snapshot, the
// recommendation and a device description. Identical reports are answered
// from an LRU keyed by the catalog version and the report fingerprint; each
// answer still carries its own snapshot ID and timestamp. SetCatalog swaps
// the catalog and empties the LRU.
//
// Every response uses the Envelope shape:
//
//	{"data": ..., "meta": {...}}
//	{"error": {"code": "not_found", "message": "..."}}
//
// The RequestID and Platform middlewares are exported so other routers can
// reuse them; LoggerExtractors surfaces their values in log records.
package xrhttp
