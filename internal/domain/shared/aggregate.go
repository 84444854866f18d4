package shared

// BaseAggregateRoot is embedded by aggregates that record events while their
// state changes. Services pull the events after the transaction commits.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate root with a fresh identity
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// Record queues an event for publication
func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// Events returns the queued events without removing them
func (a *BaseAggregateRoot) Events() []DomainEvent {
	return a.pending
}

// PullEvents returns the queued events and empties the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
