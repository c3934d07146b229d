package audio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// Info describes a parsed WAV container.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	DataBytes     int
	Duration      time.Duration
}

// EncodeWAVPCM16LE wraps raw PCM16LE mono audio bytes in a WAV container.
func EncodeWAVPCM16LE(pcm []byte, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWAVPCM16LETo(&buf, pcm, sampleRate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteWAVPCM16LETo writes raw PCM16LE mono audio bytes to out as a WAV stream.
func WriteWAVPCM16LETo(out io.Writer, pcm []byte, sampleRate int) error {
	const (
		numChannels   = 1
		bitsPerSample = 16
		audioFormat   = 1 // PCM
	)
	if sampleRate <= 0 {
		sampleRate = 16000
	}

	dataSize := uint32(len(pcm))
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	w := bufio.NewWriter(out)

	// RIFF header.
	if _, err := w.WriteString("RIFF"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(36)+dataSize); err != nil {
		return err
	}
	if _, err := w.WriteString("WAVE"); err != nil {
		return err
	}

	// fmt chunk.
	if _, err := w.WriteString("fmt "); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(audioFormat)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(numChannels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, byteRate); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, blockAlign); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(bitsPerSample)); err != nil {
		return err
	}

	// data chunk.
	if _, err := w.WriteString("data"); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}
	if _, err := w.Write(pcm); err != nil {
		return err
	}
	return w.Flush()
}

// IsWAV reports whether data starts with a RIFF/WAVE signature.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// ProbeWAV parses the header of a WAV byte stream and derives its duration
// from the declared data size and byte rate.
func ProbeWAV(data []byte) (Info, error) {
	if !IsWAV(data) {
		return Info{}, errors.New("not a RIFF/WAVE stream")
	}

	var info Info
	sawFmt := false
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return Info{}, errors.New("malformed fmt chunk")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return Info{}, fmt.Errorf("unsupported audio format %d, want PCM", format)
			}
			info.Channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			sawFmt = true
		case "data":
			// Tolerate truncated payloads; duration uses what is present.
			avail := len(data) - body
			if size > avail {
				size = avail
			}
			info.DataBytes = size
		}

		if size%2 == 1 {
			size++ // chunk bodies are word aligned
		}
		offset = body + size
	}

	if !sawFmt {
		return Info{}, errors.New("missing fmt chunk")
	}
	byteRate := info.SampleRate * info.Channels * info.BitsPerSample / 8
	if byteRate <= 0 {
		return Info{}, errors.New("invalid byte rate")
	}
	seconds := float64(info.DataBytes) / float64(byteRate)
	info.Duration = time.Duration(seconds * float64(time.Second))
	return info, nil
}
