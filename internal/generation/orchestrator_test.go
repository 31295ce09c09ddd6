package generation

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"listingcrew/internal/api"
	"listingcrew/internal/content"
	"listingcrew/internal/i18n"
	"listingcrew/internal/notify"
)

type fakeGenerator struct {
	mu     sync.Mutex
	calls  int
	tokens []string
	fn     func(ctx context.Context, url string) (content.Generated, error)
}

func (f *fakeGenerator) GenerateText(ctx context.Context, token, url string) (content.Generated, error) {
	f.mu.Lock()
	f.calls++
	f.tokens = append(f.tokens, token)
	fn := f.fn
	f.mu.Unlock()
	return fn(ctx, url)
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCreds struct {
	mu    sync.Mutex
	token string
	epoch uint64
}

func (c *fakeCreds) Credential() (string, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.epoch, c.token != ""
}

func (c *fakeCreds) bump() {
	c.mu.Lock()
	c.epoch++
	c.mu.Unlock()
}

type toastLog struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (l *toastLog) Show(msg string, sev notify.Severity) notify.Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := notify.Toast{Message: msg, Severity: sev}
	l.toasts = append(l.toasts, t)
	return t
}

func (l *toastLog) all() []notify.Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]notify.Toast(nil), l.toasts...)
}

type fixture struct {
	orch   *Orchestrator
	gen    *fakeGenerator
	creds  *fakeCreds
	editor *content.Editor
	toasts *toastLog
}

func newFixture(t *testing.T, fn func(ctx context.Context, url string) (content.Generated, error)) *fixture {
	t.Helper()
	f := &fixture{
		gen:    &fakeGenerator{fn: fn},
		creds:  &fakeCreds{token: "tok", epoch: 1},
		toasts: &toastLog{},
	}
	msgs := i18n.New("en")
	f.editor = content.NewEditor(nil, nil, msgs)
	f.orch = New(f.gen, f.creds, f.editor, f.toasts, Options{Messages: msgs})
	return f
}

func returns(g content.Generated, err error) func(context.Context, string) (content.Generated, error) {
	return func(context.Context, string) (content.Generated, error) { return g, err }
}

func (f *fixture) onlyToast(t *testing.T) notify.Toast {
	t.Helper()
	toasts := f.toasts.all()
	if len(toasts) != 1 {
		t.Fatalf("toasts=%+v, want exactly one", toasts)
	}
	return toasts[0]
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
		toast   string
	}{
		{"empty", "", ErrEmptyURL, "Please enter a valid URL"},
		{"blank", "   ", ErrEmptyURL, "Please enter a valid URL"},
		{"not a url", "not-a-url", ErrInvalidURL, "Please enter a valid URL format"},
		{"no host", "https://", ErrInvalidURL, "Please enter a valid URL format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, returns(content.Generated{}, nil))
			st, err := f.orch.Generate(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want %v", err, tt.wantErr)
			}
			if st.Status != StatusIdle || f.orch.State().Status != StatusIdle {
				t.Fatalf("state changed to %v", st.Status)
			}
			if f.gen.callCount() != 0 {
				t.Fatalf("validation failure must not call the backend")
			}
			if got := f.onlyToast(t); got.Message != tt.toast || got.Severity != notify.SeverityError {
				t.Fatalf("toast=%+v", got)
			}
		})
	}
}

func TestGenerate_Success(t *testing.T) {
	result := content.Generated{
		Titles:         []string{"A"},
		Description:    "D",
		BulletPoints:   []string{"B1"},
		KeywordsReport: "k1,k2",
	}
	f := newFixture(t, returns(result, nil))

	st, err := f.orch.Generate(context.Background(), "  https://example.com/item  ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if st.Status != StatusSucceeded || st.URL != "https://example.com/item" {
		t.Fatalf("state=%+v", st)
	}
	if f.editor.Buffer() != "D" {
		t.Fatalf("buffer=%q, want D", f.editor.Buffer())
	}
	if kw := st.Result.Keywords(); !reflect.DeepEqual(kw, []string{"k1", "k2"}) {
		t.Fatalf("keywords=%q", kw)
	}
	if f.gen.tokens[0] != "tok" {
		t.Fatalf("bearer token=%q", f.gen.tokens[0])
	}
	if got := f.onlyToast(t); got.Message != "Content generated successfully!" || got.Severity != notify.SeveritySuccess {
		t.Fatalf("toast=%+v", got)
	}
}

func TestGenerate_EmptyResult(t *testing.T) {
	f := newFixture(t, returns(content.Generated{Titles: []string{}, BulletPoints: []string{}}, nil))

	st, err := f.orch.Generate(context.Background(), "https://example.com")
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err=%v", err)
	}
	if st.Status != StatusFailed || st.HasResult() {
		t.Fatalf("state=%+v", st)
	}
	if _, ok := f.editor.Result(); ok {
		t.Fatalf("no result should be stored")
	}
	if got := f.onlyToast(t); got.Message != "No content generated. Please try again with a different URL." || got.Severity != notify.SeverityError {
		t.Fatalf("toast=%+v", got)
	}
}

func TestGenerate_StatusErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		toast string
	}{
		{"detail", &api.StatusError{StatusCode: 400, Detail: "Invalid URL format."}, "Invalid URL format."},
		{"no detail", &api.StatusError{StatusCode: 500}, "Failed to generate content"},
		{"transport", errors.New("dial tcp: connection refused"), "Failed to generate content. Please try again later."},
		{"malformed body", api.ErrMalformedResponse, "Failed to generate content. Please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, returns(content.Generated{}, tt.err))
			st, err := f.orch.Generate(context.Background(), "https://example.com")
			if !errors.Is(err, tt.err) {
				t.Fatalf("err=%v, want wrapping %v", err, tt.err)
			}
			if st.Status != StatusFailed {
				t.Fatalf("status=%v", st.Status)
			}
			if got := f.onlyToast(t); got.Message != tt.toast || got.Severity != notify.SeverityError {
				t.Fatalf("toast=%+v", got)
			}
		})
	}
}

func TestGenerate_PendingClearsPreviousAndRejectsSecondCall(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	first := true
	f := newFixture(t, nil)
	f.gen.fn = func(ctx context.Context, url string) (content.Generated, error) {
		if first {
			first = false
			return content.Generated{Description: "old"}, nil
		}
		started <- struct{}{}
		<-release
		return content.Generated{Description: "new"}, nil
	}

	if _, err := f.orch.Generate(context.Background(), "https://example.com/1"); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.orch.Generate(context.Background(), "https://example.com/2")
		done <- err
	}()
	<-started

	st := f.orch.State()
	if st.Status != StatusPending || st.URL != "https://example.com/2" || st.HasResult() {
		t.Fatalf("pending state=%+v", st)
	}
	if _, ok := f.editor.Result(); ok {
		t.Fatalf("editor should be cleared while pending")
	}

	toastsBefore := len(f.toasts.all())
	if _, err := f.orch.Generate(context.Background(), ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("err=%v, want ErrBusy", err)
	}
	if len(f.toasts.all()) != toastsBefore {
		t.Fatalf("busy rejection should not toast")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if f.editor.Buffer() != "new" {
		t.Fatalf("buffer=%q", f.editor.Buffer())
	}
	if f.gen.callCount() != 2 {
		t.Fatalf("calls=%d", f.gen.callCount())
	}
}

func TestGenerate_ResetDiscardsResponse(t *testing.T) {
	started := make(chan struct{})
	f := newFixture(t, func(ctx context.Context, url string) (content.Generated, error) {
		close(started)
		<-ctx.Done()
		return content.Generated{}, ctx.Err()
	})

	done := make(chan error, 1)
	go func() {
		_, err := f.orch.Generate(context.Background(), "https://example.com")
		done <- err
	}()
	<-started
	f.orch.Reset()

	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("err=%v, want ErrStale", err)
	}
	if st := f.orch.State(); st.Status != StatusIdle {
		t.Fatalf("state=%+v, want idle", st)
	}
	if toasts := f.toasts.all(); len(toasts) != 0 {
		t.Fatalf("stale response should not toast: %+v", toasts)
	}
}

func TestGenerate_SessionChangeDiscardsResponse(t *testing.T) {
	f := newFixture(t, nil)
	f.gen.fn = func(ctx context.Context, url string) (content.Generated, error) {
		f.creds.bump()
		return content.Generated{Description: "D"}, nil
	}

	_, err := f.orch.Generate(context.Background(), "https://example.com")
	if !errors.Is(err, ErrStale) {
		t.Fatalf("err=%v, want ErrStale", err)
	}
	if _, ok := f.editor.Result(); ok {
		t.Fatalf("stale result must not reach the editor")
	}
	if len(f.toasts.all()) != 0 {
		t.Fatalf("stale response should not toast")
	}
	if st := f.orch.State(); st.Status != StatusIdle {
		t.Fatalf("state=%v, want idle after discard", st.Status)
	}

	f.gen.fn = returns(content.Generated{Titles: []string{"A"}}, nil)
	st, err := f.orch.Generate(context.Background(), "https://example.com/2")
	if err != nil || st.Status != StatusSucceeded {
		t.Fatalf("next Generate st=%v err=%v", st.Status, err)
	}
	if f.gen.callCount() != 2 {
		t.Fatalf("calls=%d, want 2", f.gen.callCount())
	}
}

func TestUpdateDescription(t *testing.T) {
	f := newFixture(t, returns(content.Generated{Titles: []string{"A"}, Description: "D"}, nil))
	if f.orch.UpdateDescription("early") {
		t.Fatal("UpdateDescription should be ignored without a result")
	}
	if _, err := f.orch.Generate(context.Background(), "https://example.com"); err != nil {
		t.Fatal(err)
	}
	if !f.orch.UpdateDescription("Edited") {
		t.Fatal("UpdateDescription rejected after success")
	}
	st := f.orch.State()
	if st.Result.Description != "Edited" || !reflect.DeepEqual(st.Result.Titles, []string{"A"}) {
		t.Fatalf("result=%+v", st.Result)
	}
}

func TestGenerate_TimeoutIsTransportFailure(t *testing.T) {
	f := newFixture(t, func(ctx context.Context, url string) (content.Generated, error) {
		<-ctx.Done()
		return content.Generated{}, ctx.Err()
	})
	f.orch.opts.Timeout = 10 * time.Millisecond

	st, err := f.orch.Generate(context.Background(), "https://example.com")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v, want deadline exceeded", err)
	}
	if st.Status != StatusFailed {
		t.Fatalf("status=%v", st.Status)
	}
	if got := f.onlyToast(t); got.Message != "Failed to generate content. Please try again later." {
		t.Fatalf("toast=%+v", got)
	}
}

func TestValidateURL(t *testing.T) {
	if u, err := ValidateURL(" https://a.example/x?y=1 "); err != nil || u != "https://a.example/x?y=1" {
		t.Fatalf("u=%q err=%v", u, err)
	}
	for _, bad := range []string{"example.com", "/relative", "mailto:x@y.z", "http//missing"} {
		if _, err := ValidateURL(bad); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) err=%v, want ErrInvalidURL", bad, err)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusPending.String() != "pending" || StatusIdle.String() != "idle" {
		t.Fatalf("unexpected status strings")
	}
}
