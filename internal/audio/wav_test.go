package audio

import (
	"testing"
	"time"
)

func TestProbeWAVDerivesDuration(t *testing.T) {
	// 16000 Hz mono PCM16 means 32000 bytes per second.
	pcm := make([]byte, 32000*2)
	wav, err := EncodeWAVPCM16LE(pcm, 16000)
	if err != nil {
		t.Fatalf("EncodeWAVPCM16LE: %v", err)
	}
	info, err := ProbeWAV(wav)
	if err != nil {
		t.Fatalf("ProbeWAV: %v", err)
	}
	if info.SampleRate != 16000 {
		t.Fatalf("SampleRate = %d, want 16000", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Fatalf("Channels = %d, want 1", info.Channels)
	}
	if info.Duration != 2*time.Second {
		t.Fatalf("Duration = %v, want 2s", info.Duration)
	}
}

func TestProbeWAVRejectsGarbage(t *testing.T) {
	if _, err := ProbeWAV([]byte("definitely not audio")); err == nil {
		t.Fatalf("ProbeWAV accepted garbage input")
	}
}

func TestIsWAV(t *testing.T) {
	wav, err := EncodeWAVPCM16LE(make([]byte, 64), 0)
	if err != nil {
		t.Fatalf("EncodeWAVPCM16LE: %v", err)
	}
	if !IsWAV(wav) {
		t.Fatalf("IsWAV(encoded) = false, want true")
	}
	if IsWAV([]byte{0x01, 0x02}) {
		t.Fatalf("IsWAV(short) = true, want false")
	}
}
