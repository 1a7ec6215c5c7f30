package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tessvale/stablehand/internal/encounter"
)

// AuditRecord is the serialized JSONL form of one audit event.
type AuditRecord struct {
	Type    encounter.AuditEventType `json:"type"`
	Message string                   `json:"message"`
	Data    json.RawMessage          `json:"data"`
	At      time.Time                `json:"at"`
}

// AuditLog appends audit events to a JSONL file. It satisfies the core's
// fire-and-forget contract: write failures are logged and swallowed,
// never propagated into a state transition.
type AuditLog struct {
	file *os.File
}

// NewAuditLog opens or creates the JSONL log at path for appending.
func NewAuditLog(path string) (*AuditLog, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &AuditLog{file: file}, nil
}

// Record serializes and appends one event.
func (l *AuditLog) Record(ev encounter.AuditEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("audit: failed to marshal %s event: %v", ev.Type(), err)
		return
	}

	record := AuditRecord{
		Type:    ev.Type(),
		Message: ev.Message(),
		Data:    data,
		At:      time.Now().UTC(),
	}
	line, err := json.Marshal(record)
	if err != nil {
		log.Printf("audit: failed to marshal record: %v", err)
		return
	}

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		log.Printf("audit: failed to append record: %v", err)
		return
	}
	if err := l.file.Sync(); err != nil {
		log.Printf("audit: failed to sync log: %v", err)
	}
}

// Tail returns up to n most recent records, oldest first. Used by the
// history command; the log is read-mostly-never so a full scan is fine.
func (l *AuditLog) Tail(n int) ([]AuditRecord, error) {
	if _, err := l.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var records []AuditRecord
	scanner := bufio.NewScanner(l.file)
	for scanner.Scan() {
		var rec AuditRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("corrupt audit record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// Close flushes and closes the underlying file.
func (l *AuditLog) Close() error {
	return l.file.Close()
}
