package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// encodeAU 生成测试用的 .au 文件
func encodeAU(encoding, sampleRate, channels uint32, body []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, auHeader{
		Magic:      auMagic,
		DataOffset: auHeaderSize,
		DataSize:   uint32(len(body)),
		Encoding:   encoding,
		SampleRate: sampleRate,
		Channels:   channels,
	})
	buf.Write(body)
	return buf.Bytes()
}

func TestULawToLinear(t *testing.T) {
	tests := []struct {
		in   byte
		want int16
	}{
		{0x00, -32124},
		{0x0F, -16764},
		{0x7F, 0},
		{0x80, 32124},
		{0xFF, 0},
	}
	for _, tt := range tests {
		if got := ulawToLinear(tt.in); got != tt.want {
			t.Errorf("ulawToLinear(0x%02x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeAUULawMono(t *testing.T) {
	s, err := DecodeAU(encodeAU(auEncodingULaw, 8000, 1, []byte{0x80, 0x00, 0xFF}))
	if err != nil {
		t.Fatalf("DecodeAU: %v", err)
	}
	if s.SampleRate() != 8000 {
		t.Errorf("SampleRate = %d, want 8000", s.SampleRate())
	}
	// 3 帧，每帧 4 字节
	if s.Length() != 12 {
		t.Fatalf("Length = %d, want 12", s.Length())
	}

	pcm, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))
	if left != 32124 || right != 32124 {
		t.Errorf("frame 0 = (%d, %d), want mono copied to both channels", left, right)
	}
}

func TestDecodeAUPCM16Stereo(t *testing.T) {
	body := make([]byte, 8)
	binary.BigEndian.PutUint16(body[0:], uint16(1000))
	binary.BigEndian.PutUint16(body[2:], uint16(0xFC18)) // -1000
	binary.BigEndian.PutUint16(body[4:], uint16(7))
	binary.BigEndian.PutUint16(body[6:], uint16(8))

	s, err := DecodeAU(encodeAU(auEncodingPCM16, 44100, 2, body))
	if err != nil {
		t.Fatalf("DecodeAU: %v", err)
	}
	if s.Length() != 8 {
		t.Fatalf("Length = %d, want 8", s.Length())
	}

	pcm, _ := io.ReadAll(s)
	if got := int16(binary.LittleEndian.Uint16(pcm[2:])); got != -1000 {
		t.Errorf("right sample = %d, want -1000", got)
	}

	// 可以重放
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	again, _ := io.ReadAll(s)
	if !bytes.Equal(pcm, again) {
		t.Error("replay after Seek differs")
	}
}

func TestDecodeAUErrors(t *testing.T) {
	badMagic := encodeAU(auEncodingULaw, 8000, 1, []byte{0})
	badMagic[0] = 'X'

	badOffset := encodeAU(auEncodingULaw, 8000, 1, []byte{0})
	binary.BigEndian.PutUint32(badOffset[4:], 4096)

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte(".snd")},
		{"bad magic", badMagic},
		{"bad offset", badOffset},
		{"float encoding", encodeAU(6, 8000, 1, []byte{0, 0, 0, 0})},
		{"five channels", encodeAU(auEncodingULaw, 8000, 5, []byte{0})},
		{"zero sample rate", encodeAU(auEncodingULaw, 0, 1, []byte{0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeAU(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
