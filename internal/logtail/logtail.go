package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Entry is one parsed line of the jukebox log.
type Entry struct {
	Time    time.Time // zero when the line carries no timestamp
	Message string
}

// stdTimeLayout matches log.LstdFlags.
const stdTimeLayout = "2006/01/02 15:04:05"

// Tail returns at most n lines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		if count < n {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < n {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := 0; i < count; i++ {
		lines[i] = ring[(next+i)%n]
	}
	return lines, nil
}

// Parse splits a line written by the standard logger with the given prefix
// into its timestamp and message. Lines that do not match are returned whole
// as the message.
func Parse(line, prefix string) Entry {
	rest := strings.TrimPrefix(line, prefix)
	rest = strings.TrimLeft(rest, " ")
	if len(rest) < len(stdTimeLayout) {
		return Entry{Message: line}
	}
	ts, err := time.ParseInLocation(stdTimeLayout, rest[:len(stdTimeLayout)], time.Local)
	if err != nil {
		return Entry{Message: line}
	}
	return Entry{Time: ts, Message: strings.TrimSpace(rest[len(stdTimeLayout):])}
}
