package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lendshare/lendshare-backend/internal/middleware"
)

// Client relays gateway requests to the core server and plays its
// responses back verbatim, status code included.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Forward relays the request unchanged.
func (cl *Client) Forward(c *gin.Context) {
	cl.forwardBody(c, nil)
}

func (cl *Client) forwardBody(c *gin.Context, body []byte) {
	if body == nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "failed to read request body"})
			return
		}
		body = data
	}

	url := cl.baseURL + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, bytes.NewReader(body))
	if err != nil {
		c.JSON(502, gin.H{"error": "failed to build upstream request"})
		return
	}
	if v := c.GetHeader(middleware.UserHeader); v != "" {
		req.Header.Set(middleware.UserHeader, v)
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		c.JSON(502, gin.H{"error": "server unavailable"})
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(502, gin.H{"error": "failed to read upstream response"})
		return
	}
	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), data)
}
