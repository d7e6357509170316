package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/swcurran/toggl-cli/internal/errors"
)

// User is the lazily-fetched remote user record. The /me response arrives
// in two parts: "data" holds the user properties, "since" the account age;
// both are flattened into one property map.
type User struct {
	session *Session
	data    map[string]any
	loaded  bool
}

func (u *User) ensure(ctx context.Context) error {
	if u.loaded {
		return nil
	}
	return u.Reload(ctx)
}

// Reload force-fetches the user from the remote store.
func (u *User) Reload(ctx context.Context) error {
	body, err := u.session.api.Call(ctx, http.MethodGet, "/me", nil)
	if err != nil {
		return err
	}
	var envelope struct {
		Since json.Number    `json:"since"`
		Data  map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrap(err, "decoding user")
	}
	u.data = envelope.Data
	if u.data == nil {
		u.data = map[string]any{}
	}
	u.data["since"] = envelope.Since
	u.loaded = true
	return nil
}

// Get returns the named user property, or nil when unset.
func (u *User) Get(ctx context.Context, prop string) (any, error) {
	if err := u.ensure(ctx); err != nil {
		return nil, err
	}
	return u.data[prop], nil
}

// DefaultWID returns the user's default workspace id.
func (u *User) DefaultWID(ctx context.Context) (int64, error) {
	v, err := u.Get(ctx, "default_wid")
	if err != nil {
		return 0, err
	}
	wid, ok := intValue(v)
	if !ok {
		return 0, &errors.LookupError{Kind: "workspace", Name: "default", Err: errors.ErrNoSuchWorkspace}
	}
	return wid, nil
}
