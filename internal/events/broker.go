// Package events carries election lifecycle announcements to live
// subscribers. Events describe facts (an election opened, a candidate was
// added) and never contain ballot contents or interim counts.
package events

import "time"

type EventType string

const (
	ElectionCreated    EventType = "election_created"
	ElectionDeleted    EventType = "election_deleted"
	CandidateAdded     EventType = "candidate_added"
	ApplicationDecided EventType = "application_decided"
)

type Event struct {
	Type       EventType `json:"type"`
	ElectionID uint      `json:"election_id"`
	ClubID     uint      `json:"club_id"`
	At         time.Time `json:"at"`
}

type Subscriber struct {
	// C delivers events until Unsubscribe closes it.
	C chan Event
}

// Broker fans events out to subscribers. All bookkeeping happens in the Run
// loop, so Publish, Subscribe and Unsubscribe are safe from any goroutine.
type Broker struct {
	register   chan *Subscriber
	unregister chan *Subscriber
	events     chan Event
	stop       chan struct{}
}

func NewBroker() *Broker {
	return &Broker{
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		events:     make(chan Event, 16),
		stop:       make(chan struct{}),
	}
}

func (b *Broker) Run() {
	subscribers := make(map[*Subscriber]struct{})

	for {
		select {
		case sub := <-b.register:
			subscribers[sub] = struct{}{}
		case sub := <-b.unregister:
			if _, ok := subscribers[sub]; ok {
				delete(subscribers, sub)
				close(sub.C)
			}
		case event := <-b.events:
			for sub := range subscribers {
				select {
				case sub.C <- event:
				default:
					// Slow consumer; drop rather than block the loop.
				}
			}
		case <-b.stop:
			for sub := range subscribers {
				delete(subscribers, sub)
				close(sub.C)
			}

			return
		}
	}
}

func (b *Broker) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan Event, 8)}
	b.register <- sub

	return sub
}

func (b *Broker) Unsubscribe(sub *Subscriber) {
	b.unregister <- sub
}

func (b *Broker) Publish(event Event) {
	select {
	case b.events <- event:
	case <-b.stop:
	}
}

func (b *Broker) Stop() {
	close(b.stop)
}
