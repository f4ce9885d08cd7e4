package holdem

import "sort"

// sortedSeats returns every seat in players, chip-less ones included, in
// numeric ascending order.
func sortedSeats(players map[Seat]*Player) []Seat {
	out := make([]Seat, 0, len(players))
	for s := range players {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// cyclicFrom returns seats reordered to start at (or just after) start,
// wrapping numerically. If start is not itself in seats, the rotation
// begins at the next higher seat (wrapping to the lowest).
func cyclicFrom(seats []Seat, start Seat, inclusive bool) []Seat {
	if len(seats) == 0 {
		return nil
	}
	idx := 0
	for i, s := range seats {
		if inclusive {
			if s >= start {
				idx = i
				break
			}
		} else {
			if s > start {
				idx = i
				break
			}
		}
		idx = (i + 1) % len(seats)
	}
	out := make([]Seat, 0, len(seats))
	out = append(out, seats[idx:]...)
	out = append(out, seats[:idx]...)
	return out
}

// nextSeat returns the seat immediately after cur in the cyclic seat
// ordering (wrapping). seats must be sorted ascending and non-empty.
func nextSeat(seats []Seat, cur Seat) Seat {
	rot := cyclicFrom(seats, cur, false)
	return rot[0]
}

// firstSeatFrom returns the lowest seat at or after start, wrapping.
func firstSeatFrom(seats []Seat, start Seat) Seat {
	rot := cyclicFrom(seats, start, true)
	return rot[0]
}
