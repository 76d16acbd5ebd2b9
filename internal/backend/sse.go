package backend

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

type Event struct {
	Name string
	Data []byte
}

// readSSEEvents parses a text/event-stream body. Comment lines and id/retry
// fields are ignored. The terminal error (io.EOF on clean close) is sent on
// errs after out is closed. Closing done abandons pending sends.
func readSSEEvents(reader io.Reader, out chan<- Event, errs chan<- error, done <-chan struct{}) {
	defer close(out)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	name := ""
	var data bytes.Buffer
	emit := func() bool {
		if name == "" && data.Len() == 0 {
			return true
		}
		if name == "" {
			name = "message"
		}
		event := Event{Name: name, Data: append([]byte{}, data.Bytes()...)}
		name = ""
		data.Reset()
		select {
		case out <- event:
			return true
		case <-done:
			return false
		}
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case line == "":
			if !emit() {
				errs <- io.ErrClosedPipe
				return
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			segment := strings.TrimPrefix(line, "data:")
			segment = strings.TrimPrefix(segment, " ")
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(segment)
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		errs <- scanErr
		return
	}
	emit()
	errs <- io.EOF
}
