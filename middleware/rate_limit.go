package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/util"
	"github.com/redis/go-redis/v9"
)

const RateLimitWindow = time.Minute

// RateLimit caps mutating requests per caller per window with a fixed-window
// counter in redis. Reads are never limited. Redis failures let the request through.
func RateLimit(client *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		key := rateLimitKey(c, time.Now())
		pipe := client.TxPipeline()
		count := pipe.Incr(c, key)
		pipe.Expire(c, key, RateLimitWindow)
		if _, err := pipe.Exec(c); err != nil {
			log.Println("rate limiter unavailable, allowing request", err)
			return
		}
		if count.Val() > int64(limit) {
			util.HandleHTTPErrorRes(c, &util.HTTPError{
				Status:  http.StatusTooManyRequests,
				Message: "too many requests",
			})
		}
	}
}

func rateLimitKey(c *gin.Context, now time.Time) string {
	caller := "ip:" + c.ClientIP()
	if user := GetUserMaybe(c); user != nil {
		caller = "user:" + user.Id
	}
	return fmt.Sprintf("ratelimit:%v:%v", caller, now.Unix()/int64(RateLimitWindow/time.Second))
}
