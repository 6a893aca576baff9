package profiler

import (
	"encoding/json"
	"errors"
	"io"
	"runtime"
)

// ErrNoEvents is returned when there is nothing to dump.
var ErrNoEvents = errors.New("profiler: no events to dump")

// DumpFile is the name of the capture written by Dump.
const DumpFile = "hazel.profile.speedscope.json"

type event struct {
	atNS  int64
	frame int
	open  bool
}

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

// writeSpeedscope encodes evs, in write order, as an evented speedscope
// profile in microseconds since the first event. Closes that do not match
// the innermost open scope are dropped and scopes still open at the end
// are closed at the last timestamp.
func writeSpeedscope(w io.Writer, names []string, evs []event) error {
	if len(evs) == 0 {
		return ErrNoEvents
	}
	frames := make([]ssFrame, len(names))
	for i, name := range names {
		frames[i] = ssFrame{Name: name}
	}

	base := evs[0].atNS
	out := make([]ssEvent, 0, len(evs))
	stack := make([]int, 0, 64)
	var last, end int64

	for _, e := range evs {
		at := (e.atNS - base) / 1000
		if at < last {
			at = last
		}
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
		end = max(end, at)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(out) == 0 {
		return ErrNoEvents
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "hazel",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "hazel-profiler",
		Name:     "hazel capture",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }
