package calendar

// SelectionState: стадия выбора интервала кликами по сетке.
type SelectionState int

const (
	SelectionEmpty SelectionState = iota
	SelectionStartSet
	SelectionRangeSet
)

func (s SelectionState) String() string {
	switch s {
	case SelectionEmpty:
		return "empty"
	case SelectionStartSet:
		return "start_set"
	case SelectionRangeSet:
		return "range_set"
	default:
		return "unknown"
	}
}

// RangeSelection: неизменяемое состояние выбора. Переходы только через Click.
type RangeSelection struct {
	state SelectionState
	start Date
	end   Date
}

func (r RangeSelection) State() SelectionState { return r.state }

// Click применяет клик по дате d:
//   - Empty -> StartSet(d);
//   - StartSet -> RangeSet, границы меняются местами, если d раньше начала;
//   - RangeSet -> StartSet(d), новый выбор.
func (r RangeSelection) Click(d Date) RangeSelection {
	switch r.state {
	case SelectionStartSet:
		if d.Before(r.start) {
			return RangeSelection{state: SelectionRangeSet, start: d, end: r.start}
		}
		return RangeSelection{state: SelectionRangeSet, start: r.start, end: d}
	default:
		return RangeSelection{state: SelectionStartSet, start: d}
	}
}

// Start возвращает выбранное начало, если оно есть.
func (r RangeSelection) Start() (Date, bool) {
	return r.start, r.state != SelectionEmpty
}

// Range возвращает законченный интервал.
func (r RangeSelection) Range() (DateRange, bool) {
	if r.state != SelectionRangeSet {
		return DateRange{}, false
	}
	return DateRange{Start: r.start, End: r.end}, true
}

func (r RangeSelection) IsStart(d Date) bool {
	return r.state != SelectionEmpty && r.start == d
}

func (r RangeSelection) IsEnd(d Date) bool {
	return r.state == SelectionRangeSet && r.end == d
}

// Contains: попадает ли d в законченный интервал.
func (r RangeSelection) Contains(d Date) bool {
	rng, ok := r.Range()
	return ok && rng.Contains(d)
}
