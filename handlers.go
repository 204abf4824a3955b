package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// wizardEvent applies one wizard event to a locked session.
type wizardEvent func(r *http.Request, s *Session) ([]Effect, error)

// shareBase is the origin and path a share link is built on.
func shareBase(cfg *Config, r *http.Request) string {
	if cfg.baseURL != nil {
		return cfg.baseURL.String()
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/"
}

// applyEffectsLocked assumes s.mu is already held.
func applyEffectsLocked(cfg *Config, m *Metrics, s *Session, effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectNotice:
			s.notice = e.Notice
		case EffectShareLink:
			m.linksIssued.Inc()
			logf(cfg, "SYNC: Issued share link for %s", s.state.Room.ID)
		case EffectPartnerJoined:
			logf(cfg, "ROOMS: %s attached to %s", e.Role, s.state.Room.ID)
		}
	}
}

// serveEvent runs event against the caller's session, then redirects back
// to the wizard (post/redirect/get).
func serveEvent(cfg *Config, sm *SessionManager, name string, event wizardEvent) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		id := getOrSetSessionID(w, r)
		if id == "" {
			http.Error(w, "unable to assign session id", http.StatusInternalServerError)
			return
		}

		sess := sm.get(id)

		sess.mu.Lock()
		from := sess.state.Step
		effects, err := event(r, sess)
		applyEffectsLocked(cfg, sm.metrics, sess, effects)
		to := sess.state.Step
		room := sess.state.Room.ID
		sess.mu.Unlock()

		switch {
		case err != nil:
			sm.metrics.rejected.WithLabelValues(name).Inc()
			logf(cfg, "WIZARD: Rejected %s for %s in %s: %v", name, room, from, err)
		case from != to:
			sm.metrics.transitions.WithLabelValues(string(to)).Inc()
			logf(cfg, "WIZARD: %s moved %s -> %s", room, from, to)
		}

		http.Redirect(w, r, cfg.prefix+"/", http.StatusSeeOther)
	}
}

func startEvent(_ *http.Request, s *Session) ([]Effect, error) {
	return s.state.Start()
}

func roleEvent(r *http.Request, s *Session) ([]Effect, error) {
	return s.state.SelectRole(Role(r.PostForm.Get("role")))
}

func setupEvent(r *http.Request, s *Session) ([]Effect, error) {
	effects, err := s.state.SubmitProfile(r.PostForm.Get("name"), Gender(r.PostForm.Get("gender")))
	if err == nil {
		s.startMatcher()
	}

	return effects, err
}

func matcherEvent(r *http.Request, s *Session) ([]Effect, error) {
	if s.state.Step != StepMatcher {
		return nil, ErrIllegalTransition
	}
	if s.matcher == nil {
		s.startMatcher()
	}

	_, err := s.matcher.Answer(r.PostForm.Get("topic"), Score(r.PostForm.Get("score")))

	return nil, err
}

func toggleEvent(r *http.Request, s *Session) ([]Effect, error) {
	return s.state.ToggleItem(r.PostForm.Get("item"))
}

func finalizeEvent(cfg *Config) wizardEvent {
	return func(r *http.Request, s *Session) ([]Effect, error) {
		return s.state.Finalize(shareBase(cfg, r))
	}
}

func sentEvent(_ *http.Request, s *Session) ([]Effect, error) {
	return s.state.ConfirmSent()
}

// serveJoin applies a forwarded #sync= fragment. A malformed payload is
// logged and otherwise ignored; the session stays where it was.
func serveJoin(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id := getOrSetSessionID(w, r)
		if id == "" {
			http.Error(w, "unable to assign session id", http.StatusInternalServerError)
			return
		}

		sess := sm.get(id)

		next := NewState(newRoomID())
		effects, err := next.LoadLink(r.URL.Query().Get("fragment"))

		switch {
		case errors.Is(err, ErrNoSyncPayload):
		case err != nil:
			sm.metrics.decodeFailures.Inc()
			errorf("SYNC: Ignoring malformed link from %s: %v", realIP(r), err)
		default:
			sess.mu.Lock()
			sess.state = next
			sess.matcher = nil
			sess.notice = ""
			applyEffectsLocked(cfg, sm.metrics, sess, effects)
			sess.mu.Unlock()

			sm.metrics.linksLoaded.Inc()
			sm.metrics.transitions.WithLabelValues(string(StepSetup)).Inc()
		}

		http.Redirect(w, r, cfg.prefix+"/", http.StatusSeeOther)
	}
}

func serveWizard(cfg *Config, sm *SessionManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := getOrSetSessionID(w, r)
		if id == "" {
			http.Error(w, "unable to assign session id", http.StatusInternalServerError)
			return
		}

		tag, persist := resolveLanguage(r, cfg.language)
		if persist {
			setLanguageCookie(w, tag)
		}

		sess := sm.get(id)

		sess.mu.Lock()
		view := newPageView(cfg, tag, sess.state.Snapshot(), sess.takeNotice(), sess.matcher)
		sess.mu.Unlock()

		var buf bytes.Buffer
		if err := renderPage(&buf, view); err != nil {
			errs <- err
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		written, err := io.Copy(w, &buf)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: %s step (%s) to %s in %s",
			view.Step,
			humanReadableSize(written),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveShareQR renders the caller's share link as a PNG QR code.
func serveShareQR(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value == "" {
			http.NotFound(w, r)
			return
		}

		sess := sm.get(c.Value)
		sess.mu.Lock()
		link := sess.state.SyncLink
		sess.mu.Unlock()

		if link == "" {
			http.NotFound(w, r)
			return
		}

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		_, _ = w.Write(png)
	}
}

// registerWizard sets up routes so that:
//   - $prefix/                    → current wizard step
//   - $prefix/join?fragment=...   → load a share link
//   - $prefix/<event>             → wizard events (POST)
//   - $prefix/share/qr            → PNG QR code of the share link
//   - $prefix/live                → game table websocket
func registerWizard(cfg *Config, sm *SessionManager, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/", serveWizard(cfg, sm, errs))
	mux.GET(cfg.prefix+"/join", serveJoin(cfg, sm))

	mux.POST(cfg.prefix+"/start", serveEvent(cfg, sm, "start", startEvent))
	mux.POST(cfg.prefix+"/role", serveEvent(cfg, sm, "role", roleEvent))
	mux.POST(cfg.prefix+"/setup", serveEvent(cfg, sm, "setup", setupEvent))
	mux.POST(cfg.prefix+"/matcher", serveEvent(cfg, sm, "matcher", matcherEvent))
	mux.POST(cfg.prefix+"/inventory/toggle", serveEvent(cfg, sm, "toggle", toggleEvent))
	mux.POST(cfg.prefix+"/inventory/finalize", serveEvent(cfg, sm, "finalize", finalizeEvent(cfg)))
	mux.POST(cfg.prefix+"/share/sent", serveEvent(cfg, sm, "sent", sentEvent))

	mux.GET(cfg.prefix+"/share/qr", serveShareQR(cfg, sm))
	mux.GET(cfg.prefix+"/live", serveLive(cfg, sm))
}
