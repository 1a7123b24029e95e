package models

import (
	"time"
)

// RoundStatus represents the current state of a round
type RoundStatus string

const (
	// RoundStatusOpen indicates the round accepts joins and leaves
	RoundStatusOpen RoundStatus = "open"

	// RoundStatusLocked indicates the roster is frozen and the round waits for its draw
	RoundStatusLocked RoundStatus = "locked"

	// RoundStatusDrawing indicates the draw and payout are in progress
	RoundStatusDrawing RoundStatus = "drawing"

	// RoundStatusSettled indicates prizes were paid and the result is final
	RoundStatusSettled RoundStatus = "settled"

	// RoundStatusArchived indicates a settled round was moved out of the live history
	RoundStatusArchived RoundStatus = "archived"
)

// RoundStatuses lists every status in lifecycle order
var RoundStatuses = []RoundStatus{
	RoundStatusOpen,
	RoundStatusLocked,
	RoundStatusDrawing,
	RoundStatusSettled,
	RoundStatusArchived,
}

var roundStatusOrder = map[RoundStatus]int{
	RoundStatusOpen:     0,
	RoundStatusLocked:   1,
	RoundStatusDrawing:  2,
	RoundStatusSettled:  3,
	RoundStatusArchived: 4,
}

// IsOpen reports whether the round still accepts roster changes
func (s RoundStatus) IsOpen() bool { return s == RoundStatusOpen }

// IsFinal reports whether the round outcome can no longer change
func (s RoundStatus) IsFinal() bool {
	return s == RoundStatusSettled || s == RoundStatusArchived
}

// CanTransitionTo reports whether next is the immediate successor of s
func (s RoundStatus) CanTransitionTo(next RoundStatus) bool {
	cur, ok := roundStatusOrder[s]
	if !ok {
		return false
	}
	n, ok := roundStatusOrder[next]
	if !ok {
		return false
	}
	return n == cur+1
}

// Entry is one seat in a round
type Entry struct {
	// PlayerID is the account id, or a generated id for bot seats
	PlayerID string `json:"playerId"`

	// Number is the wheel number assigned to the seat, in [1, capacity]
	Number int `json:"number"`

	Name      string `json:"name"`
	AvatarRef string `json:"avatarRef,omitempty"`

	// Bot marks house-seated entries that hold no account and paid no stake
	Bot bool `json:"bot,omitempty"`

	JoinedAt time.Time `json:"joinedAt"`
}

// WinningNumbers is the drawn center and its two neighbours on the wheel
type WinningNumbers struct {
	Center int `json:"center"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// PrizeRole names which winning number a payout was earned with
type PrizeRole string

const (
	PrizeRoleCenter PrizeRole = "center"
	PrizeRoleLeft   PrizeRole = "left"
	PrizeRoleRight  PrizeRole = "right"
)

// Payout is one line of a round settlement
type Payout struct {
	PlayerID   string    `json:"playerId"`
	PrizeShare int64     `json:"prizeShare"`
	Role       PrizeRole `json:"role"`
	Number     int       `json:"number"`
	Bot        bool      `json:"bot,omitempty"`
}

// SettlementFailure records a settlement that could not be committed
type SettlementFailure struct {
	Reason  string         `json:"reason"`
	Numbers WinningNumbers `json:"numbers"`
	Planned []Payout       `json:"planned"`
	Applied []Payout       `json:"applied"`

	// Accounted lists players whose balance and stats update was committed
	// and must not be applied again on retry
	Accounted []string  `json:"accounted,omitempty"`
	FailedAt  time.Time `json:"failedAt"`
}

// Round is one lobby-to-settlement cycle
type Round struct {
	ID       string      `json:"id"`
	Status   RoundStatus `json:"status"`
	Capacity int         `json:"capacity"`
	EntryFee int64       `json:"entryFee"`

	// Entries is ordered by join time
	Entries []Entry `json:"entries"`

	// WinningNumbers is drawn once, when the round enters drawing
	WinningNumbers *WinningNumbers `json:"winningNumbers,omitempty"`

	// Settlement is set once when the round settles
	Settlement []Payout `json:"settlement,omitempty"`

	// Failure holds the last settlement attempt that did not commit cleanly
	Failure *SettlementFailure `json:"failure,omitempty"`

	// MinReachedAt is when the human roster last reached the minimum to start
	MinReachedAt *time.Time `json:"minReachedAt,omitempty"`

	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LockedAt      *time.Time `json:"lockedAt,omitempty"`
	DrawStartedAt *time.Time `json:"drawStartedAt,omitempty"`
	SettledAt     *time.Time `json:"settledAt,omitempty"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
}

// NewRound creates an empty open round
func NewRound(id string, capacity int, entryFee int64, now time.Time) *Round {
	return &Round{
		ID:        id,
		Status:    RoundStatusOpen,
		Capacity:  capacity,
		EntryFee:  entryFee,
		Entries:   []Entry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Pool is the pooled stake, always derived from the roster
func (r *Round) Pool() int64 {
	return r.EntryFee * int64(len(r.Entries))
}

// IsFull reports whether every seat is taken
func (r *Round) IsFull() bool {
	return len(r.Entries) >= r.Capacity
}

// SeatsLeft is the number of free seats
func (r *Round) SeatsLeft() int {
	if n := r.Capacity - len(r.Entries); n > 0 {
		return n
	}
	return 0
}

// EntryFor returns the seat held by playerID
func (r *Round) EntryFor(playerID string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return Entry{}, false
}

// HasPlayer reports whether playerID holds a seat
func (r *Round) HasPlayer(playerID string) bool {
	_, ok := r.EntryFor(playerID)
	return ok
}

// RemoveEntry drops the seat held by playerID and reports whether it existed
func (r *Round) RemoveEntry(playerID string) (Entry, bool) {
	for i, e := range r.Entries {
		if e.PlayerID == playerID {
			r.Entries = append(r.Entries[:i:i], r.Entries[i+1:]...)
			return e, true
		}
	}
	return Entry{}, false
}

// UsedNumbers returns the set of numbers already assigned
func (r *Round) UsedNumbers() map[int]bool {
	used := make(map[int]bool, len(r.Entries))
	for _, e := range r.Entries {
		used[e.Number] = true
	}
	return used
}

// HumanCount is the number of non-bot entries
func (r *Round) HumanCount() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Bot {
			n++
		}
	}
	return n
}

// SettlementRecord is the read-only result of a settled round
type SettlementRecord struct {
	RoundID        string         `json:"roundId"`
	WinningNumbers WinningNumbers `json:"winningNumbers"`
	Pool           int64          `json:"pool"`
	Payouts        []Payout       `json:"payouts"`

	// Unallocated is the part of the pool left over by flooring the shares
	Unallocated int64     `json:"unallocated"`
	SettledAt   time.Time `json:"settledAt"`
}

// SettlementRecordFor builds the record of a settled round
func SettlementRecordFor(r *Round) (*SettlementRecord, bool) {
	if !r.Status.IsFinal() || r.WinningNumbers == nil {
		return nil, false
	}
	var paid int64
	for _, p := range r.Settlement {
		paid += p.PrizeShare
	}
	rec := &SettlementRecord{
		RoundID:        r.ID,
		WinningNumbers: *r.WinningNumbers,
		Pool:           r.Pool(),
		Payouts:        append([]Payout{}, r.Settlement...),
		Unallocated:    r.Pool() - paid,
	}
	if r.SettledAt != nil {
		rec.SettledAt = *r.SettledAt
	}
	return rec, true
}
