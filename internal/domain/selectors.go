package domain

import "time"

// AcceptsInput is the single liveness check for an event: open in storage AND
// the deadline, if any, has not passed. Every write path gates on this; the
// deadline comparison must not be re-derived elsewhere.
func (e *Event) AcceptsInput(now time.Time) bool {
	if !e.IsOpen {
		return false
	}
	if e.Deadline != nil && !now.Before(*e.Deadline) {
		return false
	}
	return true
}

// OrderTotal sums the price of every line item. Always recomputed from the
// items themselves; the total is never stored.
func (e *Event) OrderTotal() float64 {
	var total float64
	for i := range e.Orders {
		total += e.Orders[i].Price
	}
	return total
}

type OptionTally struct {
	OptionID string `json:"option_id"`
	Name     string `json:"name"`
	Votes    int    `json:"votes"`
}

type Tally struct {
	Options []OptionTally `json:"options"`
	// TotalVotes is a display metric: users may vote for several options at
	// once, so it is not bounded by the user count.
	TotalVotes int `json:"total_votes"`
}

func (e *Event) VoteTally() Tally {
	t := Tally{Options: make([]OptionTally, 0, len(e.VotingOptions))}
	for i := range e.VotingOptions {
		opt := &e.VotingOptions[i]
		n := len(opt.Votes)
		t.Options = append(t.Options, OptionTally{
			OptionID: opt.ID,
			Name:     opt.Name,
			Votes:    n,
		})
		t.TotalVotes += n
	}
	return t
}

// Winners returns every option whose vote count equals the maximum. A maximum
// of zero produces no winners.
func (e *Event) Winners() []VotingOption {
	max := 0
	for i := range e.VotingOptions {
		if n := len(e.VotingOptions[i].Votes); n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}

	var winners []VotingOption
	for i := range e.VotingOptions {
		if len(e.VotingOptions[i].Votes) == max {
			winners = append(winners, e.VotingOptions[i])
		}
	}
	return winners
}

func (o *VotingOption) HasVote(userID string) bool {
	for _, id := range o.Votes {
		if id == userID {
			return true
		}
	}
	return false
}
