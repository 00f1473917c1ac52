// Package sink reads and writes the CSV artifact consumed by the events
// table loader.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/user/eventseeder/internal/event"
)

// TimeLayout is the timestamp encoding used in the artifact.
const TimeLayout = "2006-01-02 15:04:05"

var columns = []string{"id", "type", "owner", "owner_type", "repo", "member", "timestamp", "data", "created_at"}

// WriteFile creates or truncates path and writes the events as CSV. The
// file is flushed and closed on every return path.
func WriteFile(path string, events []event.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return Write(f, events)
}

// Write emits the header row and one record per event. The payload is
// JSON-encoded into the data column; csv handles quoting.
func Write(w io.Writer, events []event.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range events {
		data, err := event.EncodePayload(e.Payload)
		if err != nil {
			return err
		}
		record := []string{
			e.ID,
			string(e.Type),
			e.Owner,
			string(e.OwnerType),
			e.Repo,
			e.Member,
			e.Timestamp.Format(TimeLayout),
			data,
			e.CreatedAt.Format(TimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// ReadFile decodes a CSV artifact back into events.
func ReadFile(path string) ([]event.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	events, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return events, nil
}

// Read decodes the header row and all records. Times are parsed as UTC.
func Read(r io.Reader) ([]event.Event, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	if strings.Join(header, ",") != strings.Join(columns, ",") {
		return nil, fmt.Errorf("unexpected header: %s", strings.Join(header, ","))
	}

	var events []event.Event
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		e, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func decodeRecord(record []string) (event.Event, error) {
	typ := event.Type(record[1])

	ts, err := time.Parse(TimeLayout, record[6])
	if err != nil {
		return event.Event{}, fmt.Errorf("bad timestamp in record %s: %w", record[0], err)
	}
	createdAt, err := time.Parse(TimeLayout, record[8])
	if err != nil {
		return event.Event{}, fmt.Errorf("bad created_at in record %s: %w", record[0], err)
	}

	payload, err := event.DecodePayload(typ, []byte(record[7]))
	if err != nil {
		return event.Event{}, fmt.Errorf("bad payload in record %s: %w", record[0], err)
	}

	return event.Event{
		ID:        record[0],
		Type:      typ,
		Owner:     record[2],
		OwnerType: event.OwnerType(record[3]),
		Repo:      record[4],
		Member:    record[5],
		Timestamp: ts,
		Payload:   payload,
		CreatedAt: createdAt,
	}, nil
}
