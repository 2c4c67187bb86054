package utils

import (
	"fmt"
	"strings"
	"time"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI applications.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI applications.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

// messageColors assigns each message type its terminal color.
var messageColors = map[MessageType]string{
	DefaultMessage: DefaultColor,
	StatusMessage:  StatusColor,
	SuccessMessage: SuccessColor,
	ErrorMessage:   ErrorColor,
}

// DecorateText shows the message types in different colors.
func DecorateText(s string, msgType MessageType) string {
	color, ok := messageColors[msgType]
	if !ok {
		return s
	}
	return color + s + DefaultColor
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	var sb strings.Builder

	if days := d / (24 * time.Hour); days > 0 {
		fmt.Fprintf(&sb, "%dd ", int64(days))
		d -= days * 24 * time.Hour
	}
	if hours := d / time.Hour; hours > 0 || sb.Len() > 0 {
		fmt.Fprintf(&sb, "%dh ", int64(hours))
		d -= hours * time.Hour
	}
	if minutes := d / time.Minute; minutes > 0 || sb.Len() > 0 {
		fmt.Fprintf(&sb, "%dm ", int64(minutes))
		d -= minutes * time.Minute
	}
	fmt.Fprintf(&sb, "%.2fs", d.Seconds())

	return sb.String()
}
