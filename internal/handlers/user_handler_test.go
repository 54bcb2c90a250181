package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestFollowToggleEndpoint(t *testing.T) {
	srv := newTestServer(t)
	actor := srv.users.add("actor", 0)
	target := srv.users.add("target", 0)
	token := srv.tokenFor(t, actor)
	path := "/api/users/" + target.ID.Hex() + "/follow"

	var resp struct {
		Message   string `json:"message"`
		Following bool   `json:"following"`
	}

	w := srv.request(http.MethodPost, path, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Following || resp.Message != "User followed" {
		t.Fatalf("first toggle = %+v", resp)
	}

	w = srv.request(http.MethodPost, path, "", token)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Following || resp.Message != "User unfollowed" {
		t.Fatalf("second toggle = %+v", resp)
	}

	stored, _ := srv.users.GetUserByID(context.Background(), actor.ID)
	if len(stored.Following) != 0 {
		t.Fatalf("actor.following = %v, want empty after double toggle", stored.Following)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	srv := newTestServer(t)
	actor := srv.users.add("actor", 0)
	token := srv.tokenFor(t, actor)

	w := srv.request(http.MethodPost, "/api/users/"+actor.ID.Hex()+"/follow", "", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] == "" {
		t.Fatalf("missing error field in %s", w.Body.String())
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, srv.users.add("actor", 0))

	w := srv.request(http.MethodPost, "/api/users/65a000000000000000000000/follow", "", token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	srv := newTestServer(t)
	user := srv.users.add("angler", 0)
	user.Bio = "old bio"
	user.Location = "Lake Erie"
	token := srv.tokenFor(t, user)

	// Only bio is sent; location must survive.
	w := srv.request(http.MethodPut, "/api/users/"+user.ID.Hex(), `{"bio":"new bio"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}

	stored, _ := srv.users.GetUserByID(context.Background(), user.ID)
	if stored.Bio != "new bio" {
		t.Errorf("bio = %q, want %q", stored.Bio, "new bio")
	}
	if stored.Location != "Lake Erie" {
		t.Errorf("location = %q, want untouched", stored.Location)
	}
}

func TestUpdateProfileOtherUserForbidden(t *testing.T) {
	srv := newTestServer(t)
	actor := srv.users.add("actor", 0)
	other := srv.users.add("other", 0)
	token := srv.tokenFor(t, actor)

	w := srv.request(http.MethodPut, "/api/users/"+other.ID.Hex(), `{"bio":"hijack"}`, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", w.Code)
	}
}

func TestGetUserPublicProfile(t *testing.T) {
	srv := newTestServer(t)
	user := srv.users.add("angler", 42)

	w := srv.request(http.MethodGet, "/api/users/"+user.ID.Hex(), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["username"] != "angler" {
		t.Errorf("username = %v", resp["username"])
	}
	if _, leaked := resp["password"]; leaked {
		t.Error("password leaked in public profile")
	}
}

func TestGetUserNotFound(t *testing.T) {
	srv := newTestServer(t)
	if w := srv.request(http.MethodGet, "/api/users/65a000000000000000000000", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
}
