package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshHeader(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  string
	}{
		{0, "0;url=/admin/skills"},
		{time.Second, "1;url=/admin/skills"},
		{1500 * time.Millisecond, "2;url=/admin/skills"},
		{200 * time.Millisecond, "1;url=/admin/skills"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, refreshHeader(tt.delay, "/admin/skills"), tt.delay.String())
	}
}
