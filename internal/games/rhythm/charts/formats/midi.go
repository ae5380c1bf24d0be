package formats

import (
	"bytes"
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"gitlab.com/gomidi/midi/v2/smf"
)

// drumChannel is General MIDI channel 10. Its notes become background audio.
const drumChannel = 9

// DrumInstrument is the instrument name given to percussion notes.
const DrumInstrument = "drums"

type heldKey struct {
	channel uint8
	key     uint8
}

type openNote struct {
	start    int64 // absolute ticks
	velocity uint8
}

// ParseMIDI turns a Standard MIDI File into a chart. Every note-on/note-off
// pair becomes a note. Melodic channels are played by the player; the drum
// channel is background. Instruments follow the last program change of each
// channel.
func ParseMIDI(data []byte) (Chart, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return Chart{}, fmt.Errorf("midi read: %w", err)
	}

	chart := Chart{Metadata: map[string]string{}}
	seconds := func(ticks int64) float64 {
		return float64(s.TimeAt(ticks)) / 1e6
	}

	for ti, track := range s.Tracks {
		var program [16]uint8
		open := map[heldKey][]openNote{}
		var abs int64

		for _, ev := range track {
			abs += int64(ev.Delta)
			msg := ev.Message

			var ch, key, vel, prog uint8
			var text string
			switch {
			case msg.GetProgramChange(&ch, &prog):
				program[ch] = prog
			case msg.GetMetaTrackName(&text):
				if chart.Name == "" {
					chart.Name = text
				}
				chart.Metadata[fmt.Sprintf("track%d", ti)] = text
			case msg.GetNoteStart(&ch, &key, &vel):
				k := heldKey{ch, key}
				open[k] = append(open[k], openNote{start: abs, velocity: vel})
			case msg.GetNoteEnd(&ch, &key):
				k := heldKey{ch, key}
				stack := open[k]
				if len(stack) == 0 {
					chart.Skipped++
					continue
				}
				on := stack[0]
				open[k] = stack[1:]
				chart.Notes = append(chart.Notes, core.NewNote(
					ch != drumChannel,
					midiInstrument(ch, program[ch]),
					normalizeVelocity(float64(on.velocity)),
					int(key),
					seconds(on.start),
					seconds(abs),
				))
			}
		}

		for _, stack := range open {
			chart.Skipped += len(stack)
		}
	}

	sortNotes(chart.Notes)
	return chart, nil
}

// midiInstrument maps a General MIDI program onto the sample names used by
// the audio adapter.
func midiInstrument(channel, program uint8) string {
	if channel == drumChannel {
		return DrumInstrument
	}
	switch {
	case program < 8:
		return "piano"
	case program < 16:
		return "xylophone"
	case program < 24:
		return "organ"
	case program < 26:
		return "guitar-nylon"
	case program < 32:
		return "guitar-electric"
	case program < 40:
		return "bass-electric"
	case program == 42:
		return "cello"
	case program == 43:
		return "contrabass"
	case program == 46:
		return "harp"
	case program < 56:
		return "violin"
	case program == 57:
		return "trombone"
	case program == 58:
		return "tuba"
	case program == 60:
		return "french-horn"
	case program < 64:
		return "trumpet"
	case program < 68:
		return "saxophone"
	case program == 70:
		return "bassoon"
	case program < 72:
		return "clarinet"
	case program < 80:
		return "flute"
	case program < 104:
		return "harmonium"
	default:
		return "piano"
	}
}
