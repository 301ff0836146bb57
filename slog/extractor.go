package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Ensure LoggingExtractor implements itemfeed.BlockExtractor.
var _ itemfeed.BlockExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a BlockExtractor and logs how many blocks each
// descriptor located.
type LoggingExtractor struct {
	next   itemfeed.BlockExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next itemfeed.BlockExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractBlocks delegates to the wrapped extractor.
func (e *LoggingExtractor) ExtractBlocks(html string, baseURL string, desc *itemfeed.BlockDescriptor) (bags []itemfeed.RawFieldBag, err error) {
	defer func(begin time.Time) {
		var name string
		if desc != nil {
			name = desc.Name
		}
		e.logger.Info("extract blocks",
			"descriptor", name,
			"blocks", len(bags),
			"duration", time.Since(begin),
			"err", err,
		)
		if err == nil && len(bags) == 0 && desc != nil {
			e.logger.Warn("no candidate selector matched",
				"descriptor", name,
				"selectors", desc.CandidateSelectors(),
			)
		}
	}(time.Now())
	return e.next.ExtractBlocks(html, baseURL, desc)
}

// Title delegates to the wrapped extractor.
func (e *LoggingExtractor) Title(html string) string {
	return e.next.Title(html)
}
