package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		severity Severity
		name     string
		icon     string
	}{
		{Info, "info", "•"},
		{Warning, "warning", "⚠"},
		{Error, "error", "✕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.severity.String())
			out := RenderInline(tt.severity, "Move not saved")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "Move not saved")
		})
	}
}
