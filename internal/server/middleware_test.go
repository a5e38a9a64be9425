package server

import (
	"net/http/httptest"
	"testing"

	"github.com/groblegark/orderledger/internal/auth"
	"github.com/groblegark/orderledger/internal/model"
)

func testRegistry() *auth.Registry {
	return auth.NewRegistry(
		&auth.Principal{
			Name: "alice", Kind: auth.KindStaff, Token: "tok-alice",
			Permissions: []auth.Permission{auth.PermManageOrders},
		},
		&auth.Principal{
			Name: "fulfillment-bot", Kind: auth.KindApp, Token: "tok-bot",
			Permissions: []auth.Permission{auth.PermManageOrders},
		},
		&auth.Principal{
			Name: "viewer", Kind: auth.KindStaff, Token: "tok-viewer",
		},
		&auth.Principal{
			Name: "eu-staff", Kind: auth.KindStaff, Token: "tok-eu",
			Permissions: []auth.Permission{auth.PermManageOrders},
			Channels:    []string{"eu"},
		},
	)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, _, h := newAuthedServer(testRegistry())
	rec := doJSON(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "x"})
	requireStatus(t, rec, 401)
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, _, h := newAuthedServer(testRegistry())
	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "x"}, "tok-wrong")
	requireStatus(t, rec, 401)
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	_, _, h := newAuthedServer(testRegistry())
	req := httptest.NewRequest("GET", "/v1/orders", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	requireStatus(t, rec, 401)
}

func TestAuthMiddleware_HealthExempt(t *testing.T) {
	_, _, h := newAuthedServer(testRegistry())
	rec := doJSON(t, h, "GET", "/v1/health", nil)
	requireStatus(t, rec, 200)
}

func TestAuthMiddleware_DisabledWithEmptyRegistry(t *testing.T) {
	ms, _, h := newAuthedServer(auth.NewRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")

	rec := doJSON(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "open season"})
	requireStatus(t, rec, 201)

	// No principal, so the event is unattributed.
	var result noteResult
	decodeJSON(t, rec, &result)
	if !result.Event.Actor.IsZero() {
		t.Fatalf("expected unattributed actor, got %+v", result.Event.Actor)
	}
}

func TestAddNote_PermissionDenied(t *testing.T) {
	ms, pub, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")

	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "nope"}, "tok-viewer")
	requireStatus(t, rec, 403)
	requireAPIError(t, rec, codePermissionDenied, "")

	if len(ms.events) != 0 {
		t.Fatal("denied request must not write")
	}
	if len(pub.topics) != 0 {
		t.Fatal("denied request must not publish")
	}
}

func TestAddNote_ChannelScopeDenied(t *testing.T) {
	ms, pub, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-us", model.StatusUnfulfilled, "us")

	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-us/notes", map[string]any{"message": "cross-channel"}, "tok-eu")
	requireStatus(t, rec, 403)
	requireAPIError(t, rec, codePermissionDenied, "")

	if len(ms.events) != 0 || len(pub.topics) != 0 {
		t.Fatal("denied request must not write or publish")
	}
}

func TestAddNote_ChannelScopeAllowed(t *testing.T) {
	ms, _, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-eu", model.StatusUnfulfilled, "eu")

	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-eu/notes", map[string]any{"message": "in scope"}, "tok-eu")
	requireStatus(t, rec, 201)
}

func TestAddNote_StaffActorAttribution(t *testing.T) {
	ms, _, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")

	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "by alice"}, "tok-alice")
	requireStatus(t, rec, 201)

	var result noteResult
	decodeJSON(t, rec, &result)
	if result.Event.Actor.UserID != "alice" || result.Event.Actor.AppID != "" {
		t.Fatalf("got actor %+v", result.Event.Actor)
	}
}

func TestAddNote_AppActorAttribution(t *testing.T) {
	ms, _, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")

	rec := doJSONAuth(t, h, "POST", "/v1/orders/ord-a/notes", map[string]any{"message": "by bot"}, "tok-bot")
	requireStatus(t, rec, 201)

	var result noteResult
	decodeJSON(t, rec, &result)
	if result.Event.Actor.AppID != "fulfillment-bot" || result.Event.Actor.UserID != "" {
		t.Fatalf("got actor %+v", result.Event.Actor)
	}
}

func TestUpdateNote_PermissionDenied(t *testing.T) {
	ms, pub, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")
	seedNote(ms, "ord-a", "original")

	rec := doJSONAuth(t, h, "PATCH", "/v1/notes/1", map[string]any{"message": "hijack"}, "tok-viewer")
	requireStatus(t, rec, 403)

	if ms.events[0].Message() != "original" {
		t.Fatal("denied update must not mutate")
	}
	if len(pub.topics) != 0 {
		t.Fatal("denied request must not publish")
	}
}

func TestRemoveNote_PermissionDenied(t *testing.T) {
	ms, pub, h := newAuthedServer(testRegistry())
	seedOrder(ms, "ord-a", model.StatusUnfulfilled, "default")
	seedNote(ms, "ord-a", "keep me")

	rec := doJSONAuth(t, h, "DELETE", "/v1/notes/1", nil, "tok-viewer")
	requireStatus(t, rec, 403)

	if len(ms.eventsOfKind(model.KindNoteRemoved)) != 0 {
		t.Fatal("denied remove must not create a tombstone")
	}
	if len(pub.topics) != 0 {
		t.Fatal("denied request must not publish")
	}
}
