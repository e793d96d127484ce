package output

import (
	"gopkg.in/yaml.v3"

	"github.com/sonemaro/lintconf/pkg/logger"
)

func (f *formatter) formatYAML(v any) (string, error) {
	f.log.Debug("Formatting YAML output")

	bytes, err := yaml.Marshal(f.newDocument(v))
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}
