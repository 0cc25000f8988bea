package lookup

// State is the lifecycle position of a single lookup.
type State int

const (
	Idle State = iota
	Searching
	FetchingWeather
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case FetchingWeather:
		return "fetching_weather"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
