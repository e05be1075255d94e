package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult represents the outcome of a single hand from the table's point of view
type HandResult struct {
	Winner   int   // winning seat
	Showdown bool  // decided by the evaluator rather than folds
	Pot      int   // chips awarded
	Net      []int // chips won or lost per seat, indexed by seat-1
}

// SeatStats tracks statistics for one seat across every hand it played
type SeatStats struct {
	Hands           int
	ShowdownWins    int
	NonShowdownWins int
	SessionsWon     int
	SumNet          float64
	SumNet2         float64 // sum of squares for variance calculation
}

// Mean returns the average chips won per hand
func (s SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of the per-hand results
func (s SeatStats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of the per-hand results
func (s SeatStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s SeatStats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Statistics aggregates hands and sessions across a simulation. The zero value is
// ready to use; Seats grows to the largest table seen.
type Statistics struct {
	Sessions  int
	Hands     int
	Showdowns int
	Aborted   int
	Seats     []SeatStats // index 0 is seat 1
	Pots      []int

	netTotal int // sum of every seat's net, zero when the ledger balances
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	s.grow(len(result.Net))
	s.Hands++
	s.Pots = append(s.Pots, result.Pot)
	if result.Showdown {
		s.Showdowns++
	}

	for i, net := range result.Net {
		seat := &s.Seats[i]
		seat.Hands++
		seat.SumNet += float64(net)
		seat.SumNet2 += float64(net) * float64(net)
		s.netTotal += net
	}

	if w := result.Winner; w >= 1 && w <= len(s.Seats) {
		if result.Showdown {
			s.Seats[w-1].ShowdownWins++
		} else {
			s.Seats[w-1].NonShowdownWins++
		}
	}
}

// AddSession records a finished session and the seat left holding every chip, or 0
// when the session stopped at its hand limit.
func (s *Statistics) AddSession(winner int) {
	s.Sessions++
	if winner >= 1 {
		s.grow(winner)
		s.Seats[winner-1].SessionsWon++
	}
}

// AddAborted counts a hand that was abandoned and refunded
func (s *Statistics) AddAborted() {
	s.Aborted++
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.grow(len(other.Seats))
	s.Sessions += other.Sessions
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.Aborted += other.Aborted
	s.Pots = append(s.Pots, other.Pots...)
	s.netTotal += other.netTotal

	for i, o := range other.Seats {
		seat := &s.Seats[i]
		seat.Hands += o.Hands
		seat.ShowdownWins += o.ShowdownWins
		seat.NonShowdownWins += o.NonShowdownWins
		seat.SessionsWon += o.SessionsWon
		seat.SumNet += o.SumNet
		seat.SumNet2 += o.SumNet2
	}
}

// MedianPot returns the median pot size
func (s *Statistics) MedianPot() float64 {
	return s.PotPercentile(0.5)
}

// PotPercentile returns the pot size at the given percentile (0.0 to 1.0)
func (s *Statistics) PotPercentile(p float64) float64 {
	if len(s.Pots) == 0 {
		return 0
	}
	sorted := make([]int, len(s.Pots))
	copy(sorted, s.Pots)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// IsLedgerBalanced reports whether every chip won was lost by another seat
func (s *Statistics) IsLedgerBalanced() bool {
	return s.netTotal == 0
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: seats net %d chips", s.netTotal)
	}
	if len(s.Pots) != s.Hands {
		return fmt.Errorf("pot count (%d) does not match hands count (%d)", len(s.Pots), s.Hands)
	}

	wins, sessionsWon := 0, 0
	for _, seat := range s.Seats {
		wins += seat.ShowdownWins + seat.NonShowdownWins
		sessionsWon += seat.SessionsWon
	}
	if wins != s.Hands {
		return fmt.Errorf("total wins (%d) does not match total hands (%d)", wins, s.Hands)
	}
	if sessionsWon > s.Sessions {
		return fmt.Errorf("sessions won (%d) exceeds sessions (%d)", sessionsWon, s.Sessions)
	}
	return nil
}

func (s *Statistics) grow(seats int) {
	for len(s.Seats) < seats {
		s.Seats = append(s.Seats, SeatStats{})
	}
}
