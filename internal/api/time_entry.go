package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swcurran/toggl-cli/internal/errors"
	"github.com/swcurran/toggl-cli/internal/timeutil"
)

// Key names a time entry attribute. The key set is closed; Set rejects
// anything else.
type Key string

const (
	KeyDescription Key = "description"
	KeyStart       Key = "start"
	KeyStop        Key = "stop"
	KeyDuration    Key = "duration"
	KeyWID         Key = "wid"
	KeyPID         Key = "pid"
	KeyID          Key = "id"
	KeyGUID        Key = "guid"
	KeyUID         Key = "uid"
	KeyCreatedWith Key = "created_with"
	KeyDurOnly     Key = "duronly"
	KeyAt          Key = "at"
)

var knownKeys = map[Key]bool{
	KeyDescription: true,
	KeyStart:       true,
	KeyStop:        true,
	KeyDuration:    true,
	KeyWID:         true,
	KeyPID:         true,
	KeyID:          true,
	KeyGUID:        true,
	KeyUID:         true,
	KeyCreatedWith: true,
	KeyDurOnly:     true,
	KeyAt:          true,
}

// requiredKeys must all be present before a create or update call. The
// remote store demands start, duration and created_with; the description
// requirement is this client's own.
var requiredKeys = []Key{KeyStart, KeyDuration, KeyDescription, KeyCreatedWith}

// TimeEntry is a single time entry: a sparse mapping over the closed key
// set. A key being absent is distinct from a key holding a null value.
//
// The duration carries the lifecycle encoding: a value >= 0 is the elapsed
// seconds of a completed interval; a negative value marks a running entry
// and equals -(epoch seconds at start), so the live elapsed time is
// now_epoch + duration. The sign is a protocol contract with the remote
// store, not an error condition. All arithmetic is integer seconds in UTC.
type TimeEntry struct {
	session *Session
	data    map[Key]any
}

// NewEntryOptions are the optional attributes of a fresh time entry.
// Workspace and Project are names, resolved against the cached reference
// lists; an unknown name is a lookup failure.
type NewEntryOptions struct {
	Description string
	StartTime   *time.Time
	StopTime    *time.Time
	Duration    *int64
	Workspace   string
	Project     string
}

// NewTimeEntry creates an unsaved time entry. Nothing is required at
// creation; the entry is validated before it is sent to the remote store.
func (s *Session) NewTimeEntry(ctx context.Context, opts NewEntryOptions) (*TimeEntry, error) {
	te := &TimeEntry{
		session: s,
		data:    map[Key]any{},
	}

	if opts.Description != "" {
		te.data[KeyDescription] = opts.Description
	}
	if opts.StartTime != nil {
		te.data[KeyStart] = timeutil.FormatISO(*opts.StartTime)
	}
	if opts.StopTime != nil {
		te.data[KeyStop] = timeutil.FormatISO(*opts.StopTime)
	}
	if opts.Duration != nil {
		te.data[KeyDuration] = *opts.Duration
	}

	if opts.Workspace != "" {
		workspace, err := s.Workspaces().FindByName(ctx, opts.Workspace)
		if err != nil {
			return nil, err
		}
		te.data[KeyWID] = workspace.ID()
	}
	if opts.Project != "" {
		project, err := s.Projects().FindByName(ctx, opts.Workspace, opts.Project)
		if err != nil {
			return nil, err
		}
		te.data[KeyPID] = project.ID()
	}

	te.data[KeyGUID] = uuid.NewString()
	te.data[KeyCreatedWith] = CreatedWith
	return te, nil
}

// EntryWithID returns a handle on an existing remote entry, for operations
// that only need the identity, such as deletion.
func (s *Session) EntryWithID(id int64) *TimeEntry {
	return &TimeEntry{
		session: s,
		data:    map[Key]any{KeyID: id},
	}
}

// entryFromWire materializes a time entry from a decoded payload. Keys
// outside the closed set are dropped; missing keys stay unset.
func (s *Session) entryFromWire(raw map[string]any) *TimeEntry {
	te := &TimeEntry{
		session: s,
		data:    make(map[Key]any, len(raw)),
	}
	for name, v := range raw {
		k := Key(name)
		if !knownKeys[k] || v == nil {
			continue
		}
		te.data[k] = v
	}
	te.data[KeyCreatedWith] = CreatedWith
	return te
}

// Has reports whether the key is present with a non-null value.
func (te *TimeEntry) Has(k Key) bool {
	v, ok := te.data[k]
	return ok && v != nil
}

// Get returns the key's value, or nil when the key is absent.
func (te *TimeEntry) Get(k Key) any {
	return te.data[k]
}

// Set stores a value for the key. A nil value removes the key entirely,
// preserving the absent-versus-null distinction. Keys outside the closed
// set are rejected.
func (te *TimeEntry) Set(k Key, value any) error {
	if !knownKeys[k] {
		return &errors.UnknownKeyError{Key: string(k)}
	}
	if value == nil {
		delete(te.data, k)
		return nil
	}
	te.data[k] = value
	return nil
}

// ID returns the remote identifier, if the entry has been saved.
func (te *TimeEntry) ID() (int64, bool) {
	return intValue(te.data[KeyID])
}

// Duration returns the raw signed duration.
func (te *TimeEntry) Duration() (int64, bool) {
	return intValue(te.data[KeyDuration])
}

// ProjectID returns the project id, if one is set.
func (te *TimeEntry) ProjectID() (int64, bool) {
	return intValue(te.data[KeyPID])
}

// Description returns the entry description, or "".
func (te *TimeEntry) Description() string {
	s, _ := te.data[KeyDescription].(string)
	return s
}

// StartTime parses the recorded start timestamp.
func (te *TimeEntry) StartTime() (time.Time, error) {
	raw, ok := te.data[KeyStart].(string)
	if !ok {
		return time.Time{}, errors.ErrNoStart
	}
	return te.session.clock.ParseISO(raw)
}

// IsRunning reports whether the entry is currently running, i.e. its
// duration is negative.
func (te *TimeEntry) IsRunning() bool {
	d, ok := te.Duration()
	return ok && d < 0
}

// Validate checks that every key the remote store requires is present,
// except those listed in exclude. It fails naming the first missing field.
func (te *TimeEntry) Validate(exclude ...Key) error {
	for _, k := range requiredKeys {
		if excluded(k, exclude) {
			continue
		}
		if !te.Has(k) {
			te.session.log.Debug("validation failed", "missing", string(k), "entry", te.data)
			return &errors.ValidationError{Field: string(k)}
		}
	}
	return nil
}

func excluded(k Key, exclude []Key) bool {
	for _, x := range exclude {
		if x == k {
			return true
		}
	}
	return false
}

// NormalizedDuration resolves the sign encoding: a positive duration is
// returned unchanged; a negative one yields now_epoch + duration, the live
// elapsed seconds of a running entry.
func (te *TimeEntry) NormalizedDuration() (int64, error) {
	d, ok := te.Duration()
	if !ok {
		return 0, errors.ErrNoDuration
	}
	if d > 0 {
		return d, nil
	}
	return te.session.clock.EpochSeconds(te.session.clock.Now()) + d, nil
}

// Start begins tracking. With a recorded start timestamp the duration is
// computed locally as -(epoch at start) and the entry is created outright;
// without one, start is set to now and the remote "start" action computes
// the duration server-side. Either way the entry transitions to Running and
// picks up its identity from the response.
func (te *TimeEntry) Start(ctx context.Context) error {
	clock := te.session.clock

	if te.Has(KeyStart) {
		start, err := te.StartTime()
		if err != nil {
			return err
		}
		te.data[KeyDuration] = 0 - clock.EpochSeconds(start)

		if err := te.Validate(); err != nil {
			return err
		}
		if err := te.call(ctx, http.MethodPost, "/time_entries"); err != nil {
			return err
		}
	} else {
		// The start endpoint ignores "start"; set it anyway to stay
		// consistent with what the server records.
		te.data[KeyStart] = timeutil.FormatISO(clock.Now())

		if err := te.call(ctx, http.MethodPost, "/time_entries/start"); err != nil {
			return err
		}
	}

	te.session.log.Debug("started time entry", "entry", te.data)
	return nil
}

// Add sends the entry to the remote store as a completed interval.
func (te *TimeEntry) Add(ctx context.Context) error {
	if err := te.Validate(); err != nil {
		return err
	}
	return te.call(ctx, http.MethodPost, "/time_entries")
}

// Stop ends a running entry at stopTime (now when nil). Only a Running
// entry, duration < 0, may stop; anything else is a state violation and the
// entry is left untouched. The new duration is epoch(stopTime) plus the old
// negative duration, i.e. the elapsed seconds.
func (te *TimeEntry) Stop(ctx context.Context, stopTime *time.Time) error {
	te.session.log.Debug("stopping entry", "entry", te.data)

	if err := te.Validate(KeyDescription); err != nil {
		return err
	}
	d, _ := te.Duration()
	if d >= 0 {
		return &errors.StateError{Op: "stop", Reason: errors.ErrNotRunning}
	}
	id, ok := te.ID()
	if !ok {
		return &errors.StateError{Op: "stop", Reason: errors.ErrMissingID}
	}

	clock := te.session.clock
	at := clock.Now()
	if stopTime != nil {
		at = *stopTime
	}
	te.data[KeyStop] = timeutil.FormatISO(at)
	te.data[KeyDuration] = clock.EpochSeconds(at) + d

	return te.call(ctx, http.MethodPut, fmt.Sprintf("/time_entries/%d", id))
}

// Continue restarts tracking with this entry's metadata.
//
// When the continue_creates option is set, or the recorded start precedes
// the start of today, a brand-new entry is created: the fields are copied,
// identity and temporal attributes are stripped, and Start is called on the
// copy; the original is untouched and the new entry is returned.
//
// Otherwise the entry itself resumes in place: its duration is rewound to a
// negative value so the previously elapsed time keeps counting, duronly is
// set so start/stop no longer participate, and the same remote record is
// updated. The receiver is returned.
func (te *TimeEntry) Continue(ctx context.Context, continuedAt *time.Time) (*TimeEntry, error) {
	clock := te.session.clock

	start, err := te.StartTime()
	if err != nil {
		return nil, &errors.StateError{Op: "continue", Reason: err}
	}

	if te.session.continueCreates() || !start.After(clock.StartOfToday()) {
		entry := te.clone()
		for _, k := range []Key{KeyAt, KeyDuration, KeyDurOnly, KeyGUID, KeyID, KeyUID, KeyStop} {
			delete(entry.data, k)
		}
		entry.data[KeyCreatedWith] = CreatedWith
		if continuedAt != nil {
			entry.data[KeyStart] = timeutil.FormatISO(*continuedAt)
		} else {
			delete(entry.data, KeyStart)
		}
		if err := entry.Start(ctx); err != nil {
			return nil, err
		}
		return entry, nil
	}

	old, ok := te.Duration()
	if !ok {
		return nil, errors.ErrNoDuration
	}
	id, ok := te.ID()
	if !ok {
		return nil, &errors.StateError{Op: "continue", Reason: errors.ErrMissingID}
	}

	now := clock.Now()
	var offset int64
	if continuedAt != nil {
		offset = int64(continuedAt.Sub(now) / time.Second)
	}
	te.data[KeyDuration] = 0 - (clock.EpochSeconds(now) - old) - offset
	te.data[KeyDurOnly] = true // start/stop are ignored from now on

	if err := te.call(ctx, http.MethodPut, fmt.Sprintf("/time_entries/%d", id)); err != nil {
		return nil, err
	}

	te.session.log.Debug("continued entry", "entry", te.data)
	return te, nil
}

// Delete removes the entry from the remote store.
func (te *TimeEntry) Delete(ctx context.Context) error {
	id, ok := te.ID()
	if !ok {
		return &errors.StateError{Op: "delete", Reason: errors.ErrMissingID}
	}
	_, err := te.session.api.Call(ctx, http.MethodDelete, fmt.Sprintf("/time_entries/%d", id), nil)
	return err
}

// WirePayload serializes the entry as the remote store expects it:
// {"time_entry": {...}}.
func (te *TimeEntry) WirePayload() ([]byte, error) {
	fields := make(map[string]any, len(te.data))
	for k, v := range te.data {
		fields[string(k)] = v
	}
	return json.Marshal(map[string]any{"time_entry": fields})
}

// call serializes the entry, performs the remote call and merges identity
// fields from the response back into the entry.
func (te *TimeEntry) call(ctx context.Context, method, endpoint string) error {
	payload, err := te.WirePayload()
	if err != nil {
		return err
	}
	resp, err := te.session.api.Call(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	te.merge(resp)
	return nil
}

// merge copies id, guid, uid and at from a {"data": {...}} response body.
// Responses the server sends without a data envelope are ignored.
func (te *TimeEntry) merge(body []byte) {
	if len(body) == 0 {
		return
	}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
		return
	}
	for _, k := range []Key{KeyID, KeyGUID, KeyUID, KeyAt} {
		if v, ok := envelope.Data[string(k)]; ok && v != nil {
			te.data[k] = v
		}
	}
}

func (te *TimeEntry) clone() *TimeEntry {
	entry := &TimeEntry{
		session: te.session,
		data:    make(map[Key]any, len(te.data)),
	}
	for k, v := range te.data {
		entry.data[k] = v
	}
	return entry
}

// intValue normalizes the numeric representations a value can arrive in:
// typed int64 from this code, float64 or json.Number from decoded payloads.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
