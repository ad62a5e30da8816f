package booking

import "sync"

// BranchSelection is the branch chosen on the first wizard step. A zero ID
// means no branch is selected.
type BranchSelection struct {
	ID      string
	Name    string
	Address string
}

// Draft is the in-progress appointment assembled across the wizard steps.
// It lives in memory for the session and is never persisted.
type Draft struct {
	Branch BranchSelection
	Barber string
	Date   string // YYYY-MM-DD
	Time   string // slot label, e.g. "09:00"

	ClientName  string
	ClientEmail string
	ClientPhone string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Branch      *BranchSelection
	Barber      *string
	Date        *string
	Time        *string
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
}

// Store holds the single draft for a booking session. Updates are atomic
// merges; changing an upstream field clears everything downstream of it so a
// stale date or slot can never survive a branch or barber switch.
type Store struct {
	mu    sync.Mutex
	draft Draft
	subs  []func(Draft)
}

func NewStore() *Store { return &Store{} }

func (s *Store) Get() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Subscribe registers fn to run after every effective update. Notification is
// synchronous, in registration order, with the post-update draft.
func (s *Store) Subscribe(fn func(Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Update merges p into the draft (last write wins per field) and applies the
// dependent-field invalidation. Re-applying an identical value is a no-op and
// does not cascade.
func (s *Store) Update(p Patch) Draft {
	s.mu.Lock()
	prev := s.draft
	next := merge(prev, p)
	next = invalidate(prev, next)
	changed := next != prev
	s.draft = next
	subs := s.subs
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(next)
		}
	}
	return next
}

// Reset discards the draft, returning the store to its initial empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	s.draft = Draft{}
	s.mu.Unlock()
}

func merge(d Draft, p Patch) Draft {
	if p.Branch != nil {
		d.Branch = *p.Branch
	}
	if p.Barber != nil {
		d.Barber = *p.Barber
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Time != nil {
		d.Time = *p.Time
	}
	if p.ClientName != nil {
		d.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		d.ClientEmail = *p.ClientEmail
	}
	if p.ClientPhone != nil {
		d.ClientPhone = *p.ClientPhone
	}
	return d
}

// invalidate clears downstream selections when an upstream one changed.
// branch > barber > date > time; a change at one level wipes every level
// below it, even if the same patch tried to set them.
func invalidate(prev, next Draft) Draft {
	switch {
	case next.Branch != prev.Branch:
		next.Barber, next.Date, next.Time = "", "", ""
	case next.Barber != prev.Barber:
		next.Date, next.Time = "", ""
	case next.Date != prev.Date:
		next.Time = ""
	}
	return next
}
