package maply

import "go.uber.org/zap"

// logger reports skipped geometries and other non-fatal conditions during
// rendering. The library stays silent unless the caller installs a logger.
var logger = zap.NewNop()

// SetLogger installs the logger used for non-fatal rendering diagnostics,
// such as unplottable geometries being skipped. Passing nil restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}
