package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/service"
)

func newTaskRouter(tasks *mockTasks) (http.Handler, *mockAuth) {
	auth := &mockAuth{authUser: models.User{ID: 7, Name: "alice"}}
	s := &service.Service{Authorization: auth, Tasks: tasks}
	return newTestRouter(s), auth
}

func doReq(r http.Handler, method, path, body string, headers http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandlers_RequireAuth(t *testing.T) {
	r, _ := newTaskRouter(&mockTasks{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks"},
		{http.MethodGet, "/tasks/1"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
	} {
		w := doReq(r, tc.method, tc.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: got %d, want 401", tc.method, tc.path, w.Code)
		}
		if w.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("%s %s: missing challenge header", tc.method, tc.path)
		}
	}
}

func TestTaskHandlers_Create(t *testing.T) {
	registered := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	tasks := &mockTasks{createTask: models.Task{
		ID: 1, Name: "buy milk", Description: "2 liters", RegistryDate: registered, UserID: 7,
	}}
	r, _ := newTaskRouter(tasks)

	w := doReq(r, http.MethodPost, "/tasks", `{"name":"buy milk","description":"2 liters"}`, authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != 1 || task.UserID != 7 || task.Name != "buy milk" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if tasks.lastUserID != 7 {
		t.Fatalf("create scoped to user %d, want 7", tasks.lastUserID)
	}

	// missing name → 400 from binding
	w = doReq(r, http.MethodPost, "/tasks", `{"description":"no name"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestTaskHandlers_List(t *testing.T) {
	tasks := &mockTasks{listResp: []models.Task{
		{ID: 1, Name: "buy milk", UserID: 7},
		{ID: 2, Name: "walk dog", UserID: 7},
	}}
	r, _ := newTaskRouter(tasks)

	w := doReq(r, http.MethodGet, "/tasks", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int           `json:"count"`
		Tasks []models.Task `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Tasks) != 2 {
		t.Fatalf("unexpected list: %+v", resp)
	}
	if tasks.lastUserID != 7 {
		t.Fatalf("list scoped to user %d, want 7", tasks.lastUserID)
	}
}

func TestTaskHandlers_GetUpdateDelete_NotFound(t *testing.T) {
	tasks := &mockTasks{
		getErr:    service.ErrTaskNotFound,
		updateErr: service.ErrTaskNotFound,
		deleteErr: service.ErrTaskNotFound,
	}
	r, _ := newTaskRouter(tasks)

	w := doReq(r, http.MethodGet, "/tasks/99", "", authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get: expected 404, got %d", w.Code)
	}
	w = doReq(r, http.MethodPut, "/tasks/99", `{"name":"x"}`, authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("update: expected 404, got %d", w.Code)
	}
	w = doReq(r, http.MethodDelete, "/tasks/99", "", authHeader("tok"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete: expected 404, got %d", w.Code)
	}
}

func TestTaskHandlers_UpdateAndDelete(t *testing.T) {
	tasks := &mockTasks{updateTask: models.Task{ID: 5, Name: "new", Description: "after", UserID: 7}}
	r, _ := newTaskRouter(tasks)

	w := doReq(r, http.MethodPut, "/tasks/5", `{"name":"new","description":"after"}`, authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.lastTaskID != 5 || tasks.lastInput.Name != "new" {
		t.Fatalf("update got id=%d input=%+v", tasks.lastTaskID, tasks.lastInput)
	}

	w = doReq(r, http.MethodDelete, "/tasks/5", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.deleteCalls != 1 {
		t.Fatalf("expected 1 delete call, got %d", tasks.deleteCalls)
	}
}

func TestTaskHandlers_BadID(t *testing.T) {
	r, _ := newTaskRouter(&mockTasks{})

	for _, path := range []string{"/tasks/abc", "/tasks/0", "/tasks/-3"} {
		w := doReq(r, http.MethodGet, path, "", authHeader("tok"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("GET %s: expected 400, got %d", path, w.Code)
		}
	}
}
