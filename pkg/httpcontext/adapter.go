package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type ctxKey string

const (
	requestIDKey  ctxKey = "request_id"
	remoteAddrKey ctxKey = "remote_addr"

	requestIDHeader = "X-Request-ID"
)

// Adapter derives a deadline-bound stdlib context from a fasthttp request,
// carrying the request id and caller address for downstream logging.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach returns a context scoped to this request. The request id is
// taken from the inbound header when present, minted otherwise, and
// echoed on the response either way.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	id := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader)))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, id)
	stdCtx = context.WithValue(stdCtx, requestIDKey, id)

	if addr := ctx.RemoteAddr(); addr != nil {
		stdCtx = context.WithValue(stdCtx, remoteAddrKey, addr.String())
	}

	return stdCtx, cancel
}

// RequestID reports the id attached by Attach, empty if the context did
// not pass through the adapter.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RemoteAddr reports the caller address recorded by Attach.
func RemoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(remoteAddrKey).(string)
	return addr
}
