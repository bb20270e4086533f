package strutil

import "github.com/dustin/go-humanize"

// FormatBytes renders n with IEC units ("1.5 KiB").
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// FormatSIBytes renders n with SI units ("1.5 kB").
func FormatSIBytes(n uint64) string {
	return humanize.Bytes(n)
}

// ParseBytes parses sizes such as "42 MB", "1.5GiB" or "512".
func ParseBytes(s string) (uint64, error) {
	return humanize.ParseBytes(s)
}
