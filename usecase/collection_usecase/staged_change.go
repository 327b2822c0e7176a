package collection_usecase

import (
	"picset/domain"
	"picset/port/record_port"
)

// State tracks the lifecycle of a StagedChange.
type State int

const (
	StateIdle State = iota
	StateStaged
	StateCommitting
	StateCommitted
	StateFailed
)

// StagedChange is an in-flight mutation of one collection field: the
// proposed new contents plus the ordered deferred commit actions. Mutations
// chained on the same StagedChange observe the proposed contents of the
// earlier calls. A StagedChange is consumed by Submit and must not be
// reused afterwards.
type StagedChange struct {
	parent      domain.RecordRef
	field       string
	baseVersion int64
	images      domain.Images
	actions     []record_port.CommitAction
	state       State
}

func newStagedChange(parent *domain.ParentRecord, field string) *StagedChange {
	return &StagedChange{
		parent:      parent.Ref(),
		field:       field,
		baseVersion: parent.Version,
		images:      parent.Collection(field).Clone(),
		state:       StateIdle,
	}
}

// Images returns the proposed contents, including mutations staged earlier
// in the same chain.
func (c *StagedChange) Images() domain.Images {
	return c.images
}

// State returns the current lifecycle state.
func (c *StagedChange) State() State {
	return c.state
}

func (c *StagedChange) stage(images domain.Images, action record_port.CommitAction) {
	c.images = images
	c.actions = append(c.actions, action)
	c.state = StateStaged
}

func (c *StagedChange) write() *record_port.CollectionWrite {
	return &record_port.CollectionWrite{
		RecordType:  c.parent.Type,
		RecordID:    c.parent.ID,
		Field:       c.field,
		Images:      c.images,
		BaseVersion: c.baseVersion,
		Actions:     c.actions,
	}
}
