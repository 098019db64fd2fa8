// Package audio 解码 Sun/NeXT .au 音频
//
// Ebitengine 自带 wav/mp3/vorbis 解码器，但没有 .au。
// 这里把 .au 解码为 16 位小端双声道 PCM，和其他解码器的输出格式一致。
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auEncodingULaw  = 1 // 8 位 μ-law
	auEncodingPCM16 = 3 // 16 位大端线性 PCM
)

// auHeader 文件头（大端）
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF 表示未知
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Stream 解码后的 PCM 流，实现 io.ReadSeeker
type Stream struct {
	*bytes.Reader
	sampleRate int
	length     int64
}

// SampleRate 返回原始采样率
func (s *Stream) SampleRate() int {
	return s.sampleRate
}

// Length 返回 PCM 数据字节数（16 位双声道，每帧 4 字节）
func (s *Stream) Length() int64 {
	return s.length
}

// DecodeAU 解码 .au 数据
//
// 支持 μ-law 与 16 位线性 PCM，单声道会复制为双声道。
//
// 返回：
//   - *Stream: 16 位小端双声道 PCM
//   - error: 文件头非法或编码不支持
func DecodeAU(data []byte) (*Stream, error) {
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("au: file too short: %d bytes", len(data))
	}

	var h auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("au: read header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("au: invalid magic 0x%08x", h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("au: unsupported channel count %d", h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, fmt.Errorf("au: zero sample rate")
	}
	offset := int(h.DataOffset)
	if offset < auHeaderSize || offset > len(data) {
		return nil, fmt.Errorf("au: invalid data offset %d (file size %d)", offset, len(data))
	}

	body := data[offset:]
	if h.DataSize != 0xFFFFFFFF && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulawToLinear(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("au: unsupported encoding %d", h.Encoding)
	}

	pcm := toStereo16(samples, int(h.Channels))
	return &Stream{
		Reader:     bytes.NewReader(pcm),
		sampleRate: int(h.SampleRate),
		length:     int64(len(pcm)),
	}, nil
}

// toStereo16 交错采样 -> 16 位小端双声道字节流
// 末尾不完整的帧被丢弃
func toStereo16(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*4)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels == 2 {
			right = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[f*4+2:], uint16(right))
	}
	return out
}

// ulawToLinear G.711 μ-law 解码
func ulawToLinear(u byte) int16 {
	u = ^u
	sign := u & 0x80
	exponent := (u >> 4) & 0x07
	mantissa := u & 0x0F
	magnitude := ((int(mantissa) << 3) + 0x84) << exponent
	magnitude -= 0x84
	if sign != 0 {
		return int16(-magnitude)
	}
	return int16(magnitude)
}
