package game

import "slices"

// actionQueue holds the seats still owed a decision on the current street. The head is
// always the next seat to act; seats leave only through Pop or Remove.
type actionQueue struct {
	seats []int
}

func (q *actionQueue) Reset(seats []int) {
	q.seats = slices.Clone(seats)
}

func (q *actionQueue) Head() (int, bool) {
	if len(q.seats) == 0 {
		return 0, false
	}
	return q.seats[0], true
}

func (q *actionQueue) Pop() (int, bool) {
	seat, ok := q.Head()
	if ok {
		q.seats = q.seats[1:]
	}
	return seat, ok
}

// Remove takes seat out of the queue wherever it is
func (q *actionQueue) Remove(seat int) bool {
	i := slices.Index(q.seats, seat)
	if i < 0 {
		return false
	}
	q.seats = slices.Delete(slices.Clone(q.seats), i, i+1)
	return true
}

func (q *actionQueue) Len() int {
	return len(q.seats)
}

func (q *actionQueue) Seats() []int {
	return slices.Clone(q.seats)
}
