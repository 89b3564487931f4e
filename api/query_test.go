package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLikeValue(t *testing.T) {
	assert.Equal(t, "EMP001", escapeLikeValue("EMP001"))
	assert.Equal(t, `50\%`, escapeLikeValue("50%"))
	assert.Equal(t, `a\_b`, escapeLikeValue("a_b"))
	assert.Equal(t, `c:\\x`, escapeLikeValue(`c:\x`))
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 10},
		{"?page=3&page_size=20", 3, 20},
		{"?page=0&page_size=-5", 1, 10},
		{"?page=x&page_size=y", 1, 10},
		{"?page_size=1000", 1, 100},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/admin/employees"+tc.query, nil)
		page, size := pagination(c)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.pageSize, size, tc.query)
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, want := range map[string]bool{"1": true, "42": true, "0": false, "-1": false, "abc": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := paramID(c)
		assert.Equal(t, want, ok, raw)
	}
}
