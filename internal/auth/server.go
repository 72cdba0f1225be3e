package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"fitcoach/internal/logging"
	"fitcoach/internal/store"
)

const (
	// CallbackPort is the port for the OAuth callback server
	CallbackPort = 8089
	// AuthTimeout is how long to wait for the user to complete auth
	AuthTimeout = 5 * time.Minute
)

// ErrStateMismatch means the callback did not carry the state we sent.
var ErrStateMismatch = errors.New("oauth state mismatch")

const successPage = `<!DOCTYPE html>
<html>
<head><title>fitcoach connected</title></head>
<body style="font-family: system-ui; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0;">
<div style="text-align: center;">
<h1 style="color: #10B981;">Strava connected</h1>
<p>You can close this window and return to the terminal.</p>
</div>
</body>
</html>`

// callbackHandler delivers exactly one code or error from the redirect.
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var err error
		switch {
		case q.Get("state") != state:
			err = ErrStateMismatch
		case q.Get("error") != "":
			err = fmt.Errorf("strava denied access: %s", q.Get("error"))
		case q.Get("code") == "":
			err = errors.New("no code in callback")
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			select {
			case errs <- err:
			default:
			}
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, successPage)
		select {
		case codes <- q.Get("code"):
		default:
		}
	})
	return mux
}

// Authenticate runs the authorization-code flow with a local callback
// server. The URL to open is written to out.
func Authenticate(ctx context.Context, cfg *oauth2.Config, out io.Writer, logger *zap.Logger) (*Result, error) {
	logger = logging.OrNop(logger).Named("auth")

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	codes := make(chan string, 1)
	errs := make(chan error, 1)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", CallbackPort))
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}
	server := &http.Server{Handler: callbackHandler(state, codes, errs), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			select {
			case errs <- fmt.Errorf("callback server: %w", err):
			default:
			}
		}
	}()
	defer shutdownServer(server)

	fmt.Fprintf(out, "\nTo connect Strava, open this URL in your browser:\n\n  %s\n\nWaiting for authorization...\n",
		cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))
	logger.Debug("waiting for oauth callback", zap.Int("port", CallbackPort))

	var code string
	select {
	case code = <-codes:
	case err := <-errs:
		return nil, err
	case <-time.After(AuthTimeout):
		return nil, fmt.Errorf("authentication timeout after %v", AuthTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code for token: %w", err)
	}
	return &Result{Token: token, AthleteID: ExtractAthleteID(token)}, nil
}

// Login authenticates and stores the resulting credentials.
func Login(ctx context.Context, cfg *oauth2.Config, st *store.Store, out io.Writer, logger *zap.Logger) (*Result, error) {
	res, err := Authenticate(ctx, cfg, out, logger)
	if err != nil {
		return nil, err
	}
	if err := st.SaveAuth(ctx, res.Record()); err != nil {
		return nil, fmt.Errorf("saving credentials: %w", err)
	}
	logging.OrNop(logger).Named("auth").Info("strava connected", zap.Int64("athlete_id", res.AthleteID))
	return res, nil
}

// StoredTokenSource loads saved credentials and wraps them in a
// refreshing TokenSource. store.ErrNoAuth means Login never ran.
func StoredTokenSource(ctx context.Context, cfg *oauth2.Config, st *store.Store, logger *zap.Logger) (*TokenSource, error) {
	a, err := st.GetAuth(ctx)
	if err != nil {
		return nil, err
	}
	return NewTokenSource(ctx, cfg, TokenFromAuth(a), st, logger), nil
}

// generateState creates a random state string for CSRF protection
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
