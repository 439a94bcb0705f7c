package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/fielddash/internal/core"
	mw "github.com/JonMunkholm/fielddash/internal/web/middleware"
)

// withRequestMetadata adds the client IP and User-Agent to ctx for the
// upload log. RemoteAddr has already been rewritten by TrustedRealIP.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, mw.ClientIP(r))
	return core.ContextWithUserAgent(ctx, r.UserAgent())
}
