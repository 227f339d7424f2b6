package utils

import "github.com/sirupsen/logrus"

// FieldHook adds a fixed set of fields to every log entry that does not already carry them
type FieldHook struct {
	fields logrus.Fields
}

// NewFieldHook creates a hook attaching fields to every entry
func NewFieldHook(fields logrus.Fields) *FieldHook {
	return &FieldHook{fields: fields}
}

func (h *FieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FieldHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
