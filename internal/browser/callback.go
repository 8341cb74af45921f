package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const callbackHTML = `<!doctype html>
<html><head><meta charset="utf-8"><title>QKIT E-Learning</title></head>
<body style="font-family:sans-serif;text-align:center;margin-top:4em">
<h2>Signed in</h2><p>You can close this tab and return to the terminal.</p>
</body></html>`

// ErrStateMismatch is reported when a callback carries the wrong state.
var ErrStateMismatch = errors.New("browser: callback state mismatch")

// Callback is an ephemeral localhost server the web app redirects to after
// sign-in, with ?state=<state>&token=<token>.
type Callback struct {
	listener net.Listener
	srv      *http.Server
	state    string
	tokenCh  chan string
	errCh    chan error
}

// ListenCallback starts the callback server on a random loopback port.
func ListenCallback() (*Callback, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("browser.ListenCallback: %w", err)
	}
	c := &Callback{
		listener: ln,
		state:    uuid.NewString(),
		tokenCh:  make(chan string, 1),
		errCh:    make(chan error, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", c.handle)
	c.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := c.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.report(err)
		}
	}()
	return c, nil
}

func (c *Callback) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("state") != c.state {
		http.Error(w, "invalid state", http.StatusForbidden)
		c.report(ErrStateMismatch)
		return
	}
	tok := strings.TrimSpace(q.Get("token"))
	if tok == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		c.report(errors.New("browser: callback without token"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, callbackHTML) //nolint:errcheck
	select {
	case c.tokenCh <- tok:
	default:
	}
}

func (c *Callback) report(err error) {
	select {
	case c.errCh <- err:
	default:
	}
}

// Port is the loopback port the server listens on.
func (c *Callback) Port() int {
	return c.listener.Addr().(*net.TCPAddr).Port
}

// State is the anti-forgery value the web app must echo back.
func (c *Callback) State() string {
	return c.state
}

// LoginURL is the web app's login page, told where to send the token.
func (c *Callback) LoginURL(webURL string) string {
	params := url.Values{}
	params.Set("cli_port", strconv.Itoa(c.Port()))
	params.Set("state", c.state)
	return strings.TrimRight(webURL, "/") + "/login?" + params.Encode()
}

// Wait blocks until a token arrives, the server fails, or ctx is done.
func (c *Callback) Wait(ctx context.Context) (string, error) {
	select {
	case tok := <-c.tokenCh:
		return tok, nil
	case err := <-c.errCh:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("browser: waiting for sign-in: %w", ctx.Err())
	}
}

// Close shuts the server down.
func (c *Callback) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.srv.Shutdown(ctx)
}
