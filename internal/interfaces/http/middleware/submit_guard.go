package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creatorverse.backend/internal/interfaces/http/response"
	"creatorverse.backend/pkg/logger"
	"creatorverse.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// FormTokenField is the hidden one-shot token every rendered form carries
	FormTokenField = "_token"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker     = "processing"
	codeSubmitInProgress = "ERR_SUBMIT_IN_PROGRESS"
	submitKeyPrefix      = "submit:"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// storedResponse is what a finished submission leaves behind for replays
type storedResponse struct {
	Status      int    `json:"status"`
	Location    string `json:"location,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body,omitempty"`
}

// SubmitGuard lets each form token or Idempotency-Key go through once. A
// duplicate that arrives while the first is running gets 409; one that arrives
// after a successful run gets the same redirect or body again. Failed runs
// release the key so the user can retry. Redis trouble never blocks a request.
func SubmitGuard(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			key = c.PostForm(FormTokenField)
		}
		if key == "" {
			c.Next()
			return
		}

		storageKey := submitKeyPrefix + c.Request.URL.Path + ":" + key
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				inProgress(c)
				return
			}
			replay(c, val)
			return
		} else if !redis.IsNil(err) {
			logger.Warn(ctx, "submit guard unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "submit guard unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			inProgress(c)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// the request context may already be cancelled; the key must be settled either way
		settleCtx := context.WithoutCancel(ctx)
		if !completed(c) {
			if err := redisDel(settleCtx, storageKey); err != nil {
				logger.Warn(ctx, "submit guard could not release key", zap.Error(err))
			}
			return
		}

		encoded, err := json.Marshal(storedResponse{
			Status:      c.Writer.Status(),
			Location:    c.Writer.Header().Get("Location"),
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.body.String(),
		})
		if err != nil {
			_ = redisDel(settleCtx, storageKey)
			return
		}
		if err := redisSet(settleCtx, storageKey, string(encoded), retention); err != nil {
			logger.Warn(ctx, "submit guard could not store result", zap.Error(err))
		}
	}
}

// completed reports a handler run that produced a 2xx or 3xx answer for a
// client that is still there. Aborted runs never count.
func completed(c *gin.Context) bool {
	if c.IsAborted() || c.Request.Context().Err() != nil {
		return false
	}
	status := c.Writer.Status()
	return status >= http.StatusOK && status < http.StatusBadRequest
}

func inProgress(c *gin.Context) {
	response.ErrorWithError(c, http.StatusConflict, codeSubmitInProgress, "Request already in progress")
	c.Abort()
}

func replay(c *gin.Context, raw string) {
	var stored storedResponse
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.Status == 0 {
		// unreadable entry; treat the submission as done
		c.AbortWithStatus(http.StatusConflict)
		return
	}

	c.Header("X-Idempotency-Hit", "true")
	if stored.Location != "" {
		c.Header("Location", stored.Location)
	}
	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	if stored.Body == "" {
		c.AbortWithStatus(stored.Status)
		return
	}
	c.Data(stored.Status, contentType, []byte(stored.Body))
	c.Abort()
}
