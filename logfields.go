package main

import "log/slog"

// Log attribute keys shared by all components.
const (
	keyPath     = "path"
	keyEntry    = "entry"
	keyCategory = "category"
	keySeries   = "series"
	keyKey      = "key"
	keyOutcome  = "outcome"
	keyError    = "error"
)

func logPath(p string) slog.Attr     { return slog.String(keyPath, p) }
func logEntry(id string) slog.Attr   { return slog.String(keyEntry, id) }
func logCategory(c string) slog.Attr { return slog.String(keyCategory, c) }
func logSeries(s string) slog.Attr   { return slog.String(keySeries, s) }
func logKey(k string) slog.Attr      { return slog.String(keyKey, k) }
func logOutcome(o WriteOutcome) slog.Attr {
	return slog.String(keyOutcome, o.String())
}
func logError(err error) slog.Attr {
	if err == nil {
		return slog.String(keyError, "")
	}
	return slog.String(keyError, err.Error())
}
