package record

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

type encoder interface {
	Encode(v any) error
}

func newEncoder(w io.Writer, format Format) (encoder, error) {
	switch format {
	case FormatNDJSON:
		return json.NewEncoder(w), nil
	case FormatMsgpack:
		return msgpack.NewEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown log format %d", format)
	}
}

// Read decodes a whole log from r.
func Read(r io.Reader, format Format) (*Log, error) {
	var (
		log *Log
		err error
	)
	switch format {
	case FormatNDJSON:
		log, err = readNDJSON(r)
	case FormatMsgpack:
		log, err = readMsgpack(r)
	default:
		return nil, fmt.Errorf("unknown log format %d", format)
	}
	if err != nil {
		return nil, err
	}
	if err := log.Validate(); err != nil {
		return nil, err
	}
	return log, nil
}

func readNDJSON(r io.Reader) (*Log, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	log := &Log{}
	lineNo := 0
	haveHeader := false
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if !haveHeader {
			if err := json.Unmarshal(line, &log.Header); err != nil {
				return nil, fmt.Errorf("%w: header on line %d: %v", ErrInvalidLog, lineNo, err)
			}
			haveHeader = true
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("%w: event on line %d: %v", ErrInvalidLog, lineNo, err)
		}
		if err := checkKind(ev.Kind); err != nil {
			return nil, fmt.Errorf("%w on line %d", err, lineNo)
		}
		log.Events = append(log.Events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLog, err)
	}
	return log, nil
}

func readMsgpack(r io.Reader) (*Log, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))

	log := &Log{}
	if err := dec.Decode(&log.Header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidLog, err)
	}
	for i := 1; ; i++ {
		var ev Event
		err := dec.Decode(&ev)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidLog, i, err)
		}
		if err := checkKind(ev.Kind); err != nil {
			return nil, fmt.Errorf("%w at event %d", err, i)
		}
		log.Events = append(log.Events, ev)
	}
	return log, nil
}

func checkKind(kind string) error {
	switch kind {
	case KindCall, KindAbort, KindExit:
		return nil
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidLog, kind)
	}
}
