package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/swcurran/toggl-cli/internal/errors"
	"github.com/swcurran/toggl-cli/internal/timeutil"
)

// Schemas of the reference record types, assembled once at definition time
// and shared by every instance.
var (
	workspaceSchema = NewSchema(
		NewPropertyField("id", FieldOptions{ReadOnly: true}),
		NewPropertyField("name", FieldOptions{Required: true}),
		NewPropertyField("premium", FieldOptions{}),
		NewDateTimeField("at", FieldOptions{ReadOnly: true}),
	)

	projectSchema = NewSchema(
		NewPropertyField("id", FieldOptions{ReadOnly: true}),
		NewPropertyField("name", FieldOptions{Required: true}),
		NewPropertyField("wid", FieldOptions{WriteOnce: true}),
		NewPropertyField("cid", FieldOptions{}),
		NewPropertyField("active", FieldOptions{Default: true}),
		NewDateTimeField("at", FieldOptions{ReadOnly: true}),
	)

	clientSchema = NewSchema(
		NewPropertyField("id", FieldOptions{ReadOnly: true}),
		NewPropertyField("name", FieldOptions{Required: true}),
		NewPropertyField("wid", FieldOptions{WriteOnce: true}),
		NewPropertyField("notes", FieldOptions{}),
		NewDateTimeField("at", FieldOptions{ReadOnly: true}),
	)
)

// Workspace is a schema-described workspace record.
type Workspace struct {
	*Entity
}

// ID returns the workspace id.
func (w *Workspace) ID() int64 {
	v, _ := w.Get("id")
	id, _ := intValue(v)
	return id
}

// Name returns the workspace name.
func (w *Workspace) Name() string {
	v, _ := w.Get("name")
	s, _ := v.(string)
	return s
}

// Project is a schema-described project record.
type Project struct {
	*Entity
}

func (p *Project) ID() int64 {
	v, _ := p.Get("id")
	id, _ := intValue(v)
	return id
}

func (p *Project) Name() string {
	v, _ := p.Get("name")
	s, _ := v.(string)
	return s
}

// ClientID returns the id of the client the project belongs to, if any.
func (p *Project) ClientID() (int64, bool) {
	v, _ := p.Get("cid")
	return intValue(v)
}

// Client is a schema-described client record.
type Client struct {
	*Entity
}

func (c *Client) ID() int64 {
	v, _ := c.Get("id")
	id, _ := intValue(v)
	return id
}

func (c *Client) Name() string {
	v, _ := c.Get("name")
	s, _ := v.(string)
	return s
}

// WorkspaceList is the lazily-fetched cache of the user's workspaces. It
// loads once on first use and stays valid for the process unless Reload is
// called.
type WorkspaceList struct {
	session *Session
	items   []*Workspace
	loaded  bool
}

func (l *WorkspaceList) ensure(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	return l.Reload(ctx)
}

// Reload forces a fetch from the remote store.
func (l *WorkspaceList) Reload(ctx context.Context) error {
	body, err := l.session.api.Call(ctx, http.MethodGet, "/workspaces", nil)
	if err != nil {
		return err
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.Wrap(err, "decoding workspaces")
	}
	items := make([]*Workspace, 0, len(raw))
	for _, r := range raw {
		e, err := Deserialize(workspaceSchema, r)
		if err != nil {
			return err
		}
		items = append(items, &Workspace{Entity: e})
	}
	l.items = items
	l.loaded = true
	return nil
}

// All returns the cached workspaces in fetch order.
func (l *WorkspaceList) All(ctx context.Context) ([]*Workspace, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	return l.items, nil
}

// FindByID returns the workspace with the given id.
func (l *WorkspaceList) FindByID(ctx context.Context, id int64) (*Workspace, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, w := range l.items {
		if w.ID() == id {
			return w, nil
		}
	}
	return nil, &errors.LookupError{Kind: "workspace", Name: fmt.Sprint(id), Err: errors.ErrNoSuchWorkspace}
}

// FindByName returns the first workspace whose name starts with prefix.
func (l *WorkspaceList) FindByName(ctx context.Context, prefix string) (*Workspace, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, w := range l.items {
		if strings.HasPrefix(w.Name(), prefix) {
			return w, nil
		}
	}
	return nil, &errors.LookupError{Kind: "workspace", Name: prefix, Err: errors.ErrNoSuchWorkspace}
}

// ClientList is the lazily-fetched cache of the user's clients.
type ClientList struct {
	session *Session
	items   []*Client
	loaded  bool
}

func (l *ClientList) ensure(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	return l.Reload(ctx)
}

func (l *ClientList) Reload(ctx context.Context) error {
	body, err := l.session.api.Call(ctx, http.MethodGet, "/clients", nil)
	if err != nil {
		return err
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.Wrap(err, "decoding clients")
	}
	items := make([]*Client, 0, len(raw))
	for _, r := range raw {
		e, err := Deserialize(clientSchema, r)
		if err != nil {
			return err
		}
		items = append(items, &Client{Entity: e})
	}
	l.items = items
	l.loaded = true
	return nil
}

func (l *ClientList) All(ctx context.Context) ([]*Client, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	return l.items, nil
}

func (l *ClientList) FindByID(ctx context.Context, id int64) (*Client, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, c := range l.items {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, &errors.LookupError{Kind: "client", Name: fmt.Sprint(id), Err: errors.ErrNoSuchClient}
}

func (l *ClientList) FindByName(ctx context.Context, prefix string) (*Client, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, c := range l.items {
		if strings.HasPrefix(c.Name(), prefix) {
			return c, nil
		}
	}
	return nil, &errors.LookupError{Kind: "client", Name: prefix, Err: errors.ErrNoSuchClient}
}

// ProjectList is the lazily-fetched cache of projects in one workspace: the
// named one, or the user's default workspace when no name is given.
type ProjectList struct {
	session   *Session
	workspace *Workspace
	items     []*Project
	loaded    bool
}

func (l *ProjectList) ensure(ctx context.Context, workspaceName string) error {
	if l.loaded {
		return nil
	}
	return l.Fetch(ctx, workspaceName)
}

// Fetch loads the project list for the named workspace, or for the user's
// default workspace when name is empty.
func (l *ProjectList) Fetch(ctx context.Context, workspaceName string) error {
	var workspace *Workspace
	var err error
	if workspaceName != "" {
		workspace, err = l.session.Workspaces().FindByName(ctx, workspaceName)
	} else {
		wid, werr := l.session.Me().DefaultWID(ctx)
		if werr != nil {
			return werr
		}
		workspace, err = l.session.Workspaces().FindByID(ctx, wid)
	}
	if err != nil {
		return err
	}
	l.workspace = workspace
	return l.fetchByWID(ctx, workspace.ID())
}

func (l *ProjectList) fetchByWID(ctx context.Context, wid int64) error {
	body, err := l.session.api.Call(ctx, http.MethodGet, fmt.Sprintf("/workspaces/%d/projects", wid), nil)
	if err != nil {
		return err
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.Wrap(err, "decoding projects")
	}
	items := make([]*Project, 0, len(raw))
	for _, r := range raw {
		e, err := Deserialize(projectSchema, r)
		if err != nil {
			return err
		}
		items = append(items, &Project{Entity: e})
	}
	l.items = items
	l.loaded = true
	return nil
}

// Workspace returns the workspace this list was fetched for.
func (l *ProjectList) Workspace() *Workspace {
	return l.workspace
}

func (l *ProjectList) All(ctx context.Context) ([]*Project, error) {
	if err := l.ensure(ctx, ""); err != nil {
		return nil, err
	}
	return l.items, nil
}

func (l *ProjectList) FindByID(ctx context.Context, id int64) (*Project, error) {
	if err := l.ensure(ctx, ""); err != nil {
		return nil, err
	}
	for _, p := range l.items {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, &errors.LookupError{Kind: "project", Name: fmt.Sprint(id), Err: errors.ErrNoSuchProject}
}

// FindByName returns the first project whose name starts with prefix,
// scoped to the named workspace (default workspace when empty).
func (l *ProjectList) FindByName(ctx context.Context, workspaceName, prefix string) (*Project, error) {
	if err := l.ensure(ctx, workspaceName); err != nil {
		return nil, err
	}
	for _, p := range l.items {
		if strings.HasPrefix(p.Name(), prefix) {
			return p, nil
		}
	}
	return nil, &errors.LookupError{Kind: "project", Name: prefix, Err: errors.ErrNoSuchProject}
}

// TimeEntryList is the lazily-fetched cache of recent time entries, from
// the start of yesterday through the last minute of today, sorted by start.
type TimeEntryList struct {
	session *Session
	items   []*TimeEntry
	loaded  bool
}

func (l *TimeEntryList) ensure(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	return l.Reload(ctx)
}

// Reload force-fetches the recent entries from the remote store.
func (l *TimeEntryList) Reload(ctx context.Context) error {
	clock := l.session.clock
	query := url.Values{}
	query.Set("start_date", timeutil.FormatISO(clock.StartOfYesterday()))
	query.Set("end_date", timeutil.FormatISO(clock.LastMinuteToday()))
	endpoint := "/time_entries?" + query.Encode()

	body, err := l.session.api.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.Wrap(err, "decoding time entries")
	}

	items := make([]*TimeEntry, 0, len(raw))
	for _, r := range raw {
		items = append(items, l.session.entryFromWire(r))
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].data[KeyStart].(string)
		b, _ := items[j].data[KeyStart].(string)
		return a < b
	})

	l.items = items
	l.loaded = true
	return nil
}

// All returns the cached entries sorted by start time.
func (l *TimeEntryList) All(ctx context.Context) ([]*TimeEntry, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	return l.items, nil
}

// Latest returns the most recent entry.
func (l *TimeEntryList) Latest(ctx context.Context) (*TimeEntry, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	if len(l.items) == 0 {
		return nil, &errors.LookupError{Kind: "time entry", Name: "latest", Err: errors.ErrNoSuchEntry}
	}
	return l.items[len(l.items)-1], nil
}

// FindByDescription returns the most recent entry with the given
// description.
func (l *TimeEntryList) FindByDescription(ctx context.Context, description string) (*TimeEntry, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].Description() == description {
			return l.items[i], nil
		}
	}
	return nil, &errors.LookupError{Kind: "time entry", Name: description, Err: errors.ErrNoSuchEntry}
}

// Now returns the currently running entry, or nil when nothing is running.
func (l *TimeEntryList) Now(ctx context.Context) (*TimeEntry, error) {
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	for _, e := range l.items {
		if e.IsRunning() {
			return e, nil
		}
	}
	return nil, nil
}
