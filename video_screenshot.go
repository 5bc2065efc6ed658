// video_screenshot.go - Screenshot serialization for LegacyCap Engine

/*
 _                                  ____
| |    ___  __ _  __ _  ___ _   _ / ___|__ _ _ __
| |   / _ \/ _` |/ _` |/ __| | | | |   / _` | '_ \
| |__|  __/ (_| | (_| | (__| |_| | |__| (_| | |_) |
|_____\___|\__, |\__,_|\___|\__, |\____\__,_| .__/
           |___/            |___/           |_|

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/LegacyCapEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
)

// shotHeaderSize is the pixel data offset inside the screenshot file. The
// BMP headers occupy 66 bytes; padding up to 128 keeps the payload transfer
// aligned the way the engine likes it.
const shotHeaderSize = 128

// yearBias is added to the RTC's BCD century-less year so %04X prints the
// full year.
const yearBias = 0x2000

// dumpFrame serializes the currently captured frame to a BMP file named
// from the current date and time. It returns the path it attempted and the
// write result; the caller decides whether anyone cares.
//
// The capture unit is stopped for the duration of the dump so the texture
// is not rewritten mid-transfer, and restarted unconditionally afterwards,
// even when the write failed. The hidden presentation buffer is borrowed as
// staging memory: legal only while capture is stopped, and still a race
// against the panel scanning out the buffer we just swapped away from. That
// race is cosmetic, not structural, and deliberately left in.
func (p *FramePipeline) dumpFrame() (string, error) {
	p.cap.Stop()

	dim := captureDim(p.scaler)
	fileSize := shotHeaderSize + dim.W*dim.H*2

	tmp := p.disp.Buffer(SideBack)
	p.xfer.Transfer(p.captureTex, Dim{captureTexW, scaledFrameH},
		tmp[shotHeaderSize:fileSize], dim,
		XferInFmt(FmtA1BGR5)|XferOutFmt(FmtA1BGR5)|XferCropEnable)
	copy(tmp[:shotHeaderSize], bmpHeader(dim))
	p.xfer.WaitDone()

	td := p.clock.DateTime()
	name := fmt.Sprintf("%04X_%02X_%02X_%02X_%02X_%02X.bmp",
		uint16(td.Y)+yearBias, td.Mon, td.D, td.H, td.Min, td.S)
	path := filepath.Join(p.shotDir, name)
	err := p.fs.WriteFile(path, tmp[:fileSize])

	p.cap.Start()

	return path, err
}

// bmpHeader builds the fixed 128-byte prefix of a screenshot file: BMP file
// header, BITMAPINFOHEADER with negative height (top-to-bottom rows) and
// BI_BITFIELDS 16bpp channel masks matching the capture format, zero-padded
// to shotHeaderSize.
func bmpHeader(dim Dim) []byte {
	const (
		infoHeaderSize = 40
		biBitfields    = 3
	)
	imageSize := uint32(dim.W * dim.H * 2)

	h := make([]byte, shotHeaderSize)
	le := binary.LittleEndian

	// File header.
	h[0], h[1] = 'B', 'M'
	le.PutUint32(h[2:], shotHeaderSize+imageSize) // file size
	le.PutUint32(h[10:], shotHeaderSize)          // pixel data offset

	// Info header.
	le.PutUint32(h[14:], infoHeaderSize)
	le.PutUint32(h[18:], uint32(int32(dim.W)))
	le.PutUint32(h[22:], uint32(int32(-dim.H)))
	le.PutUint16(h[26:], 1) // color planes
	le.PutUint16(h[28:], 16)
	le.PutUint32(h[30:], biBitfields)
	le.PutUint32(h[34:], imageSize)

	// Channel masks: 5 bits each of R/G/B, alpha bit ignored.
	le.PutUint32(h[54:], 0xF800)
	le.PutUint32(h[58:], 0x07C0)
	le.PutUint32(h[62:], 0x003E)

	return h
}
