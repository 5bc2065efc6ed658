package main

import "time"

// RtcTimeDate is a snapshot of the real-time clock with every field encoded
// in BCD, like the hardware RTC delivers it. Printing a field with %02X
// therefore yields its decimal digits.
type RtcTimeDate struct {
	Y   uint8 // Year within century, BCD
	Mon uint8
	D   uint8
	H   uint8
	Min uint8
	S   uint8
}

// Clock abstracts real-time clock access for the screenshot path.
type Clock interface {
	DateTime() RtcTimeDate
}

// SystemClock reads the host clock and converts to the RTC's BCD encoding.
type SystemClock struct{}

func (SystemClock) DateTime() RtcTimeDate {
	now := time.Now()
	return RtcTimeDate{
		Y:   toBcd(now.Year() % 100),
		Mon: toBcd(int(now.Month())),
		D:   toBcd(now.Day()),
		H:   toBcd(now.Hour()),
		Min: toBcd(now.Minute()),
		S:   toBcd(now.Second()),
	}
}

func toBcd(n int) uint8 {
	return uint8(n/10<<4 | n%10)
}
