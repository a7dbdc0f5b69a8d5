package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"lumincoin/internal/log"
	"lumincoin/internal/session"
)

// Refresh exchanges the stored refresh token for a new token pair.
// On any failure the session is cleared and false is returned. Concurrent
// callers share a single refresh call, which outlives the cancellation of
// the caller that started it.
func (c *Client) Refresh(ctx context.Context) bool {
	shared := context.WithoutCancel(ctx)
	v, _, _ := c.refresh.Do("refresh", func() (any, error) {
		return c.refreshTokens(shared), nil
	})
	ok, _ := v.(bool)
	return ok
}

func (c *Client) refreshTokens(ctx context.Context) bool {
	refreshToken, err := c.store.Get(ctx, session.RefreshTokenKey)
	if err == nil && refreshToken != "" {
		if access, refresh, ok := c.postRefresh(ctx, refreshToken); ok {
			err := c.store.Write(ctx, access, refresh, nil)
			if err == nil {
				c.logger.DebugContext(ctx, "Tokens refreshed", log.FieldOperation, log.OpRefresh)
				return true
			}
			c.logger.ErrorContext(ctx, "Failed to store refreshed tokens", log.FieldError, err)
		}
	}

	if err := c.store.Clear(ctx); err != nil {
		c.logger.ErrorContext(ctx, "Failed to clear session", log.FieldError, err)
	}
	return false
}

func (c *Client) postRefresh(ctx context.Context, refreshToken string) (access, refresh string, ok bool) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", "", false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/refresh", bytes.NewReader(body))
	if err != nil {
		return "", "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Token refresh failed", log.FieldError, err)
		return "", "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", false
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil || !gjson.ValidBytes(data) {
		return "", "", false
	}

	parsed := gjson.ParseBytes(data)
	if Truthy(parsed.Get("error")) || !Truthy(parsed.Get("tokens")) {
		return "", "", false
	}
	access = parsed.Get("tokens.accessToken").String()
	refresh = parsed.Get("tokens.refreshToken").String()
	if access == "" || refresh == "" {
		return "", "", false
	}
	return access, refresh, true
}

// Truthy mirrors JSON truthiness: null, false, 0, "" and missing values are
// false; objects, arrays and true are true.
func Truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}
