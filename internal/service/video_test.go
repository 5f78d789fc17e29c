package service_test

import (
	"alcyxob/coach-log/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=IODxDxX7oi4", "https://www.youtube.com/embed/IODxDxX7oi4"},
		{"already embed", "https://www.youtube.com/embed/abc", "https://www.youtube.com/embed/abc"},
		{"other host", "https://vimeo.com/12345", "https://vimeo.com/12345"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.EmbedURL(tt.in))
		})
	}
}
