package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidActionStatus = goerr.New("invalid action item status")

type BriefID string

// NewBriefID generates a new unique BriefID
func NewBriefID() BriefID {
	return BriefID(uuid.New().String())
}

type ActionStatus string

const (
	StatusOpen    ActionStatus = "open"
	StatusBlocked ActionStatus = "blocked"
	StatusDone    ActionStatus = "done"
)

// Validate checks if the status is one of the known values
func (s ActionStatus) Validate() error {
	switch s {
	case StatusOpen, StatusBlocked, StatusDone:
		return nil
	default:
		return goerr.Wrap(ErrInvalidActionStatus, "unknown status", goerr.V("status", s))
	}
}

type ActionItem struct {
	Owner  string       `json:"owner"`
	Item   string       `json:"item"`
	Due    string       `json:"due"`
	Status ActionStatus `json:"status"`
}

type AgendaItem struct {
	Topic   string `json:"topic"`
	Minutes int    `json:"minutes"`
	Owner   string `json:"owner"`
}

// Brief is the synthesized meeting artifact. Once persisted it is
// immutable; a meeting accumulates versions ordered by CreatedAt.
type Brief struct {
	ID        BriefID   `json:"-"`
	MeetingID MeetingID `json:"-"`
	Provider  string    `json:"-"`
	CreatedAt time.Time `json:"-"`

	MeetingTitle   string       `json:"meeting_title"`
	TimeWindow     string       `json:"time_window"`
	Recap          string       `json:"last_meeting_recap"`
	ActionItems    []ActionItem `json:"open_action_items"`
	KeyTopics      []string     `json:"key_topics_today"`
	ProposedAgenda []AgendaItem `json:"proposed_agenda"`
	Evidence       []Evidence   `json:"evidence"`
}

// Normalize fills nil sequences and defaulted enum values so the persisted
// form never contains null fields. Serialization after Normalize is
// idempotent.
func (b *Brief) Normalize() {
	if b.ActionItems == nil {
		b.ActionItems = []ActionItem{}
	}
	if b.KeyTopics == nil {
		b.KeyTopics = []string{}
	}
	if b.ProposedAgenda == nil {
		b.ProposedAgenda = []AgendaItem{}
	}
	if b.Evidence == nil {
		b.Evidence = []Evidence{}
	}
	for i := range b.ActionItems {
		if b.ActionItems[i].Status.Validate() != nil {
			b.ActionItems[i].Status = StatusOpen
		}
	}
}
