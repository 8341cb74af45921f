package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/qkit-edu/qkit/pkg/domain"
)

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/profile" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.User{ //nolint:errcheck
			ID:       1,
			UserName: "ann",
			Role:     &domain.Role{Name: "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", StaticToken("test-token"))
	me, err := c.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if me.UserName != "ann" {
		t.Errorf("UserName = %q, want %q", me.UserName, "ann")
	}
	if me.Role == nil || me.Role.Name != "admin" {
		t.Errorf("Role = %+v, want admin", me.Role)
	}
}

func TestGetProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("bad-token"))
	_, err := c.GetProfile(context.Background())
	if err == nil {
		t.Fatal("expected error for unauthorized request")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("IsStatus(err, 401) = false for %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 401") {
		t.Errorf("error = %q, want it to contain 'HTTP 401'", got)
	}
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(domain.Page[domain.Course]{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, err := c.ListCourses(context.Background(), 1, 10); err != nil {
		t.Fatalf("ListCourses() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestTokenSourceConsultedPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.User{}) //nolint:errcheck
	}))
	defer srv.Close()

	tok := "first"
	c := New(srv.URL, func() string { return tok })
	c.GetProfile(context.Background()) //nolint:errcheck
	tok = ""
	c.GetProfile(context.Background()) //nolint:errcheck

	if len(seen) != 2 || seen[0] != "Bearer first" || seen[1] != "" {
		t.Errorf("Authorization headers = %q, want [\"Bearer first\" \"\"]", seen)
	}
}

func TestListCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("query = %q, want page=2&limit=10", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(domain.Page[domain.Course]{ //nolint:errcheck
			Items: []domain.Course{{ID: 11, Name: "Go"}, {ID: 12, Name: "Vue"}},
			Meta:  domain.Meta{TotalItems: 12, ItemsPerPage: 10, TotalPages: 2, CurrentPage: 2},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	page, err := c.ListCourses(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListCourses() error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("got %d courses, want 2", len(page.Items))
	}
	if page.Meta.CurrentPage != 2 || page.Meta.TotalItems != 12 {
		t.Errorf("Meta = %+v", page.Meta)
	}
}

func TestListAdminOrders_DataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/admin" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"id":7,"status":"COMPLETED","totalPrice":99.5,"courses":[{"id":1,"name":"Go","price":"99.5"}],"user":{"id":3,"userName":"bob"}}],"meta":{"totalItems":1,"itemsPerPage":100,"totalPages":1,"currentPage":1}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	page, err := c.ListAdminOrders(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("ListAdminOrders() error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != 7 {
		t.Fatalf("Data = %+v", page.Data)
	}
	if page.Data[0].User.UserName != "bob" {
		t.Errorf("User.UserName = %q, want bob", page.Data[0].User.UserName)
	}
}

func TestMyCourses_TeachingEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items":[{"id":5,"name":"Algo","price":"10.00"}],"meta":{"total":1,"page":1,"limit":100}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	page, err := c.MyCourses(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("MyCourses() error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Price != "10.00" {
		t.Errorf("Items = %+v", page.Items)
	}
	if page.Meta.Total != 1 {
		t.Errorf("Meta.Total = %d, want 1", page.Meta.Total)
	}
}

func TestQuizMutations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/quizzes":
			var q domain.Quiz
			if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			id := int64(9)
			q.ID = &id
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(q) //nolint:errcheck
		case r.Method == http.MethodPatch && r.URL.Path == "/quizzes/9":
			var q domain.Quiz
			json.NewDecoder(r.Body).Decode(&q) //nolint:errcheck
			id := int64(9)
			q.ID = &id
			json.NewEncoder(w).Encode(q) //nolint:errcheck
		case r.Method == http.MethodDelete && r.URL.Path == "/quizzes/9":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	ctx := context.Background()

	created, err := c.CreateQuiz(ctx, domain.Quiz{Title: "intro", LessonID: 3})
	if err != nil {
		t.Fatalf("CreateQuiz() error: %v", err)
	}
	if !created.HasID(9) || created.Title != "intro" {
		t.Errorf("created = %+v", created)
	}

	updated, err := c.UpdateQuiz(ctx, 9, domain.Quiz{Title: "renamed"})
	if err != nil {
		t.Fatalf("UpdateQuiz() error: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("updated.Title = %q, want renamed", updated.Title)
	}

	if err := c.DeleteQuiz(ctx, 9); err != nil {
		t.Fatalf("DeleteQuiz() error: %v", err)
	}
}

func TestHTTPError_ValidationMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["title should not be empty","lessonId must be a number"],"error":"Bad Request"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.CreateQuiz(context.Background(), domain.Quiz{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	want := "title should not be empty; lessonId must be a number"
	if got := ErrorMessage(err, "fallback"); got != want {
		t.Errorf("ErrorMessage() = %q, want %q", got, want)
	}
}

func TestHTTPError_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.GetProfile(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items": "not-a-list"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ListUsers(context.Background(), 1, 10)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message", &HTTPError{StatusCode: 404, Message: "Course not found"}, "Course not found"},
		{"status only", &HTTPError{StatusCode: 502}, "request failed with status code 502"},
		{"wrapped server message", wrapErr(&HTTPError{StatusCode: 403, Message: "Forbidden resource"}), "Forbidden resource"},
		{"transport", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
		{"empty", errors.New(""), "fallback"},
		{"decode", wrapErr(&DecodeError{Err: errors.New("invalid character 'o'")}), "fallback"},
		{"url error", wrapErr(&url.Error{Op: "Get", URL: "http://127.0.0.1:1/users", Err: errors.New("connection refused")}), "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage_Responses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json")) //nolint:errcheck
	}))
	c := New(srv.URL, nil)
	_, err := c.ListUsers(context.Background(), 1, 10)
	if got := ErrorMessage(err, "Failed to load users"); got != "Failed to load users" {
		t.Errorf("malformed body: ErrorMessage() = %q, want fallback", got)
	}

	srv.Close()
	_, err = c.ListUsers(context.Background(), 1, 10)
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	got := ErrorMessage(err, "Failed to load users")
	if strings.Contains(got, "client.ListUsers") || strings.Contains(got, srv.URL) {
		t.Errorf("closed server: ErrorMessage() = %q, want transport message only", got)
	}
	if got == "" || got == "Failed to load users" {
		t.Errorf("closed server: ErrorMessage() = %q, want transport message", got)
	}
}

func wrapErr(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "client.X: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second)              // slow server
		json.NewEncoder(w).Encode(domain.User{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.GetProfile(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
