package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotificationKind tags the two notification variants.
type NotificationKind string

const (
	// KindPersisted notifications are stored in the snapshot.
	KindPersisted NotificationKind = "persisted"
	// KindTaskDeadline and KindProjectDeadline are derived on every read.
	KindTaskDeadline    NotificationKind = "task"
	KindProjectDeadline NotificationKind = "project"
)

// NotificationKey identifies a notification in a list. For persisted
// notifications ID is the notification id; for derived ones it is the id of
// the task or project the deadline belongs to.
type NotificationKey struct {
	Kind NotificationKind
	ID   int64
}

// Derived reports whether the key names a computed notification.
func (k NotificationKey) Derived() bool {
	return k.Kind == KindTaskDeadline || k.Kind == KindProjectDeadline
}

// String renders "123" for persisted keys and "task:123" / "project:123"
// for derived ones.
func (k NotificationKey) String() string {
	if k.Derived() {
		return fmt.Sprintf("%s:%d", k.Kind, k.ID)
	}
	return strconv.FormatInt(k.ID, 10)
}

// ParseNotificationKey is the inverse of NotificationKey.String.
func ParseNotificationKey(s string) (NotificationKey, error) {
	s = strings.TrimSpace(s)
	kind := KindPersisted
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		switch NotificationKind(prefix) {
		case KindTaskDeadline, KindProjectDeadline:
			kind = NotificationKind(prefix)
		default:
			return NotificationKey{}, fmt.Errorf("invalid notification key %q", s)
		}
		s = rest
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NotificationKey{}, fmt.Errorf("invalid notification key %q", s)
	}
	return NotificationKey{Kind: kind, ID: id}, nil
}

// Notification is either a PersistedNotification or a DerivedNotification.
type Notification interface {
	Key() NotificationKey
	Header() NotificationHeader
	notification()
}

// NotificationHeader carries the fields every variant renders.
type NotificationHeader struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Time    string `json:"time"`
	Unread  bool   `json:"unread"`
}

// PersistedNotification is created as a side effect of an entity creation
// and stored in the snapshot. Time is a display label, not a timestamp;
// CreatedAt is zero for snapshots written before it existed.
type PersistedNotification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon"`
	Time      string    `json:"time"`
	Unread    bool      `json:"unread"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n PersistedNotification) Key() NotificationKey {
	return NotificationKey{Kind: KindPersisted, ID: n.ID}
}

func (n PersistedNotification) Header() NotificationHeader {
	return NotificationHeader{
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
		Icon:    n.Icon,
		Time:    n.Time,
		Unread:  n.Unread,
	}
}

func (PersistedNotification) notification() {}

// DerivedNotification is computed from a task or project deadline. It is
// never stored and never marked read.
type DerivedNotification struct {
	Source    NotificationKind `json:"source"`
	SourceID  int64            `json:"sourceId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Time      string           `json:"time"`
	DaysUntil int              `json:"daysUntil"`
}

// Derived notification constants.
const (
	DeadlineType  = "deadline"
	DeadlineIcon  = "Clock"
	DeadlineTitle = "Deadline approaching"
)

func (n DerivedNotification) Key() NotificationKey {
	return NotificationKey{Kind: n.Source, ID: n.SourceID}
}

func (n DerivedNotification) Header() NotificationHeader {
	return NotificationHeader{
		Type:    DeadlineType,
		Title:   n.Title,
		Message: n.Message,
		Icon:    DeadlineIcon,
		Time:    n.Time,
		Unread:  true,
	}
}

func (DerivedNotification) notification() {}

// NotificationView is the flat JSON form of either variant.
type NotificationView struct {
	Key string `json:"key"`
	NotificationHeader
	Derived bool `json:"derived"`
}

// ViewOf flattens n for JSON output.
func ViewOf(n Notification) NotificationView {
	return NotificationView{
		Key:                n.Key().String(),
		NotificationHeader: n.Header(),
		Derived:            n.Key().Derived(),
	}
}
