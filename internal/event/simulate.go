package event

// Synthetic timeline builders for the simulate command and for tests.
// Timestamps start at 1000ms so relative gaps are unambiguous.

const simulateStartMs = 1000

// TypedTimeline builds a timeline that types text character by character
// at the given words-per-minute rate (1 word = 5 characters).
func TypedTimeline(text string, wpm int) Sequence {
	if wpm <= 0 {
		wpm = 60
	}
	gapMs := int64(60_000 / (wpm * 5))
	if gapMs < 1 {
		gapMs = 1
	}

	var events []Event
	ts := int64(simulateStartMs)
	for _, r := range text {
		events = append(events, Event{TimestampMs: ts, InsertedText: string(r)})
		ts += gapMs
	}
	seq, _ := NewSequence(events) // timestamps strictly increasing by construction
	return seq
}

// PastedTimeline builds a timeline that inserts the whole text in a
// single event.
func PastedTimeline(text string) Sequence {
	if text == "" {
		seq, _ := NewSequence(nil)
		return seq
	}
	seq, _ := NewSequence([]Event{{TimestampMs: simulateStartMs, InsertedText: text}})
	return seq
}

// MixedTimeline types the first half of text and pastes the rest after a
// short gap.
func MixedTimeline(text string, wpm int) Sequence {
	runes := []rune(text)
	split := len(runes) / 2
	typed := TypedTimeline(string(runes[:split]), wpm)

	events := typed.Events()
	ts := int64(simulateStartMs)
	if n := len(events); n > 0 {
		ts = events[n-1].TimestampMs + 500
	}
	if split < len(runes) {
		events = append(events, Event{TimestampMs: ts, InsertedText: string(runes[split:])})
	}
	seq, _ := NewSequence(events)
	return seq
}
