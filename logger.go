/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */


package main

import (
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// LogView is an output log shown in the window that can be scrolled.
type LogView struct {
	// buf contains each line of logged text.
	buf []string

	// pos is the current user read position within the log.
	pos int

	// width is the maximum number of characters shown per line.
	width int
}

// NewLogView creates a new LogView that wraps lines longer than width.
func NewLogView(width int) *LogView {
	return &LogView{
		buf:   make([]string, 0, 100),
		pos:   0,
		width: width,
	}
}

// Log outputs a new line to the log.
func (v *LogView) Log(s ...string) {
	scroll := v.pos == len(v.buf)

	// add the new line, wrapped to fit
	v.buf = append(v.buf, v.wrap(strings.Join(s, " "))...)

	if scroll {
		v.pos = len(v.buf)
	}
}

// Logln outputs a new line to the log, with an empty line prefixed.
func (v *LogView) Logln(s ...string) {
	scroll := v.pos == len(v.buf)

	// append the lines
	v.buf = append(v.buf, "")
	v.buf = append(v.buf, v.wrap(strings.Join(s, " "))...)

	if scroll {
		v.pos = len(v.buf)
	}
}

func (v *LogView) wrap(s string) []string {
	if v.width <= 0 || len(s) <= v.width {
		return []string{s}
	}

	lines := make([]string, 0, len(s)/v.width+1)
	for len(s) > v.width {
		lines = append(lines, s[:v.width])
		s = s[v.width:]
	}

	return append(lines, s)
}

// Window returns a slice of strings logged.
func (v *LogView) Window(n int) []string {
	start := v.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(v.buf) {
		return v.buf[start:]
	}

	return v.buf[start : start+n]
}

// Home scrolls the log to the beginning.
func (v *LogView) Home() {
	v.pos = 0
}

// End scrolls the log to the end.
func (v *LogView) End() {
	v.pos = len(v.buf)
}

// ScrollUp scrolls the log back one position.
func (v *LogView) ScrollUp() {
	v.pos -= 1

	// clamp to home
	if v.pos < 0 {
		v.Home()
	}
}

// ScrollDown scrolls the log forward one position.
func (v *LogView) ScrollDown(windowSize int) {
	v.pos += 1

	// if less than the window size, drop to it
	if v.pos <= windowSize {
		v.pos = windowSize + 1
	}

	// clamp to end
	if v.pos >= len(v.buf) {
		v.End()
	}
}

// Logln writes a message to the window log and the console logger.
func Logln(msg string, detail ...string) {
	if len(detail) == 0 {
		Logger.Info(msg)
		Messages.Logln(msg)
		return
	}

	text := strings.Join(detail, " ")
	Logger.Info(msg, log.String("detail", text))
	Messages.Logln(msg, text)
}
