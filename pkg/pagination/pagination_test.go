package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseQuery(query string) Params {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 50, Offset: 0}},
		{"explicit", "page=3&limit=20", Params{Page: 3, Limit: 20, Offset: 40}},
		{"zero page", "page=0", Params{Page: 1, Limit: 50, Offset: 0}},
		{"negative limit", "limit=-5", Params{Page: 1, Limit: 50, Offset: 0}},
		{"limit capped", "limit=9999", Params{Page: 1, Limit: 500, Offset: 0}},
		{"garbage", "page=abc&limit=xyz", Params{Page: 1, Limit: 50, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuery(tt.query))
		})
	}
}
