package output

import (
	"encoding/json"
	"time"

	"github.com/sonemaro/lintconf/pkg/logger"
)

// document is the envelope of structured output
type document struct {
	RunID      string    `json:"runId,omitempty" yaml:"runId,omitempty"`
	Kind       string    `json:"kind" yaml:"kind"`
	Generated  time.Time `json:"generated" yaml:"generated"`
	Result     any       `json:"result" yaml:"result"`
	Statistics *stats    `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

func (f *formatter) newDocument(v any) *document {
	doc := &document{
		RunID:     f.config.RunID,
		Kind:      kindOf(v),
		Generated: f.config.Now().UTC(),
		Result:    v,
	}
	if f.config.WithStats {
		f.log.Debug("Adding statistics to structured output")
		doc.Statistics = f.calculateStats(v)
	}
	return doc
}

func (f *formatter) formatJSON(v any) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.MarshalIndent(f.newDocument(v), "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
