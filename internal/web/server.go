package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/auth"
	"github.com/cirogiorgini/turnero-client/internal/booking"
	"github.com/cirogiorgini/turnero-client/internal/history"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Server renders the booking wizard as a small server-side web UI on top of
// the same core the CLI uses.
type Server struct {
	API      *api.Client
	Sessions *Sessions
	Fetcher  *booking.Fetcher
	History  history.Recorder
	Log      *slog.Logger
}

type slotView struct {
	Label    string
	Free     bool
	Selected bool
}

type pageData struct {
	Title       string
	User        auth.Identity
	Flash       string
	Step        int
	StepName    string
	StepCount   int
	ProgressPct int
	Draft       booking.Draft
	Branches    []api.Branch
	Barbers     []api.Barber
	Days        []booking.Entry
	Slots       []slotView
	Loading     bool
	Complete    bool
	Errors      booking.FieldErrors
	Records     []history.Record
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(assets)))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/wizard", http.StatusFound)
		})
		r.Get("/wizard", s.handleWizard)
		r.Post("/wizard/branch", s.handleSelectBranch)
		r.Post("/wizard/barber", s.handleSelectBarber)
		r.Post("/wizard/date", s.handleSelectDate)
		r.Post("/wizard/time", s.handleSelectTime)
		r.Post("/wizard/details", s.handleDetails)
		r.Post("/wizard/details/autosave", s.handleAutosave)
		r.Post("/wizard/next", s.handleNext)
		r.Post("/wizard/back", s.handleBack)
		r.Post("/wizard/confirm", s.handleConfirm)
		r.Post("/wizard/restart", s.handleRestart)
		r.Get("/history", s.handleHistory)
	})

	return r
}

type ctxKey string

const sessionKey ctxKey = "session"

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.Sessions.Get(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) session {
	sess, _ := r.Context().Value(sessionKey).(session)
	return sess
}

func (s *Server) wizardFor(sess session) (*booking.Wizard, *booking.FieldDebouncer) {
	return s.Sessions.Wizard(sess.ID, func(w *booking.Wizard) *booking.FieldDebouncer {
		return booking.NewFieldDebouncer(booking.DefaultDebounce, func(field, value string) {
			d := w.Draft()
			name, email, phone := d.ClientName, d.ClientEmail, d.ClientPhone
			switch field {
			case "clientName":
				name = value
			case "clientEmail":
				email = value
			case "clientPhone":
				phone = value
			default:
				return
			}
			_ = w.SetDetails(name, email, phone)
		})
	})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", pageData{Title: "Log in"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := s.API.Login(r.Context(), email, password)
	if err != nil {
		s.render(w, "login.html", pageData{Title: "Log in", Flash: flashFor(err, "Could not reach the booking service, try again.")})
		return
	}
	if err := s.Sessions.Set(w, r, auth.FromUser(user)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

// flashFor prefers the service's own message when the error carries one.
func flashFor(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.Sessions.Get(r); ok {
		s.Sessions.Clear(w, sess.ID)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleWizard(w http.ResponseWriter, r *http.Request) {
	s.renderWizard(w, r, "")
}

// renderWizard draws the current step. Days and slots render fail closed:
// while the availability fetch is in flight everything shows as unavailable.
func (s *Server) renderWizard(w http.ResponseWriter, r *http.Request, flash string) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	d := wiz.Draft()

	data := pageData{
		Title:       "Book an appointment",
		User:        sess.Identity,
		Flash:       flash,
		Step:        int(wiz.Step()),
		StepName:    wiz.Step().String(),
		StepCount:   wiz.StepCount(),
		ProgressPct: int(wiz.Progress() * 100),
		Draft:       d,
		Loading:     wiz.Loading(),
		Complete:    wiz.Complete(),
	}

	var tmpl string
	switch wiz.Step() {
	case booking.StepBranch:
		tmpl = "wizard_branch.html"
		branches, err := s.API.WithToken(sess.Identity.Token).Branches(r.Context())
		if err != nil {
			s.Log.Warn("branch list failed", "error", err)
			if data.Flash == "" {
				data.Flash = "Could not load branches. Please log in again."
			}
		}
		data.Branches = branches
	case booking.StepSchedule:
		tmpl = "wizard_schedule.html"
		if d.Branch.ID != "" {
			barbers, err := s.API.WithToken(sess.Identity.Token).BranchBarbers(r.Context(), d.Branch.ID)
			if err != nil {
				s.Log.Warn("barber list failed", "branch", d.Branch.ID, "error", err)
				if data.Flash == "" {
					data.Flash = "Could not load barbers for this branch."
				}
			}
			data.Barbers = barbers
		}
		table := wiz.Availability()
		data.Days = table.Days()
		if d.Date != "" {
			for _, slot := range booking.SlotUniverse() {
				data.Slots = append(data.Slots, slotView{
					Label:    slot,
					Free:     table.SlotFree(d.Date, slot),
					Selected: slot == d.Time,
				})
			}
		}
	case booking.StepDetails:
		tmpl = "wizard_details.html"
		data.Errors = booking.ValidateDetails(d.ClientName, d.ClientEmail, d.ClientPhone)
	default:
		tmpl = "wizard_summary.html"
	}

	s.render(w, tmpl, data)
}

func (s *Server) handleSelectBranch(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	branchID := r.FormValue("branch_id")

	branches, err := s.API.WithToken(sess.Identity.Token).Branches(r.Context())
	if err != nil {
		s.renderWizard(w, r, "Could not load branches. Please log in again.")
		return
	}
	for _, b := range branches {
		if b.ID == branchID {
			_ = wiz.SelectBranch(booking.BranchSelection{ID: b.ID, Name: b.Name, Address: b.Address})
			http.Redirect(w, r, "/wizard", http.StatusFound)
			return
		}
	}
	s.renderWizard(w, r, "Unknown branch.")
}

func (s *Server) handleSelectBarber(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	barberID := r.FormValue("barber")
	if err := wiz.SelectBarber(barberID); err != nil {
		s.renderWizard(w, r, err.Error())
		return
	}

	// The request context dies with this response; the fetch gets its own.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		s.Fetcher.Feed(ctx, wiz, barberID)
	}()

	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleSelectDate(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := wiz.SelectDate(r.FormValue("date")); err != nil {
		s.renderWizard(w, r, "That day has no free slots.")
		return
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleSelectTime(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := wiz.SelectTime(r.FormValue("time")); err != nil {
		s.renderWizard(w, r, "That time is taken, pick another slot.")
		return
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, deb := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deb.Flush()
	if err := wiz.SetDetails(
		strings.TrimSpace(r.FormValue("clientName")),
		strings.TrimSpace(r.FormValue("clientEmail")),
		strings.TrimSpace(r.FormValue("clientPhone")),
	); err != nil {
		s.renderWizard(w, r, err.Error())
		return
	}
	if err := wiz.Next(); err != nil {
		s.renderWizard(w, r, "Fix the highlighted fields.")
		return
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

// handleAutosave receives single-field edits as the user types; commits go
// through the debouncer so the draft is not churned on every keystroke.
func (s *Server) handleAutosave(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_, deb := s.wizardFor(sess)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deb.Set(r.FormValue("field"), r.FormValue("value"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, deb := s.wizardFor(sess)
	deb.Flush()
	if err := wiz.Next(); err != nil {
		if errors.Is(err, booking.ErrStepIncomplete) {
			s.renderWizard(w, r, "Complete this step before continuing.")
			return
		}
		s.renderWizard(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, _ := s.wizardFor(sess)
	wiz.Back()
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	wiz, deb := s.wizardFor(sess)
	deb.Flush()

	d := wiz.Draft()
	if err := wiz.Confirm(r.Context(), s.API); err != nil {
		if errors.Is(err, booking.ErrComplete) {
			http.Redirect(w, r, "/wizard", http.StatusFound)
			return
		}
		s.renderWizard(w, r, flashFor(err, "Could not reach the booking service, try again."))
		return
	}

	rec := history.FromDraft(d.Branch.ID, d.Branch.Name, d.Barber, d.Date, d.Time,
		d.ClientName, d.ClientEmail, d.ClientPhone)
	if err := s.History.Record(r.Context(), rec); err != nil {
		s.Log.Warn("history record failed", "error", err)
	}
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.Sessions.ResetWizard(sess.ID)
	http.Redirect(w, r, "/wizard", http.StatusFound)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	records, err := s.History.Recent(r.Context(), 50)
	if err != nil {
		s.Log.Warn("history list failed", "error", err)
	}
	s.render(w, "history.html", pageData{
		Title:   "Booking history",
		User:    sess.Identity,
		Records: records,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	t, err := template.ParseFS(assets, "templates/base.html", "templates/"+name)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.Log.Error("render failed", "template", name, "error", err)
	}
}

// Start runs the HTTP server until ctx is canceled.
func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("web ui listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}
