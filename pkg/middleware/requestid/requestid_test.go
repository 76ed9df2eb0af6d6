package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(header string) (echoed, stored string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		stored = Value(c)
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header().Get(Header), stored
}

func TestMiddlewareReusesCallerID(t *testing.T) {
	echoed, stored := serve("req-42")
	assert.Equal(t, "req-42", echoed)
	assert.Equal(t, "req-42", stored)
}

func TestMiddlewareReplacesMissingOrUnsafeID(t *testing.T) {
	for _, header := range []string{"", "has space", strings.Repeat("a", maxLength+1)} {
		echoed, stored := serve(header)
		assert.NotEqual(t, header, echoed)
		assert.Len(t, echoed, 36)
		assert.Equal(t, echoed, stored)
	}
}
