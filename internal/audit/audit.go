// Package audit writes a JSON file per loan event so librarians have a
// paper trail of every borrow and return attempt, successful or denied.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Event is one recorded loan-ledger action.
type Event struct {
	Action   string    `json:"action"` // "borrow" or "return"
	Title    string    `json:"title"`
	Borrower string    `json:"borrower,omitempty"`
	Outcome  string    `json:"outcome"` // "success" or "denied"
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// RecordBorrow logs a borrow attempt. A nil opErr means success.
func (a *Auditor) RecordBorrow(title, borrower string, opErr error) {
	a.record(Event{Action: "borrow", Title: title, Borrower: borrower}, opErr)
}

// RecordReturn logs a return attempt. A nil opErr means success.
func (a *Auditor) RecordReturn(title string, opErr error) {
	a.record(Event{Action: "return", Title: title}, opErr)
}

func (a *Auditor) record(event Event, opErr error) {
	event.At = time.Now()
	event.Outcome = "success"
	if opErr != nil {
		event.Outcome = "denied"
		event.Reason = opErr.Error()
	}

	if _, err := a.SaveJSON(event); err != nil {
		log.Printf("Failed to save audit event: %v", err)
	}
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename.
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	auditID := uuid.New()
	filename := fmt.Sprintf("%s.json", auditID.String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

// RemoveOlderThan deletes audit files last modified before the cutoff.
// Returns the number of files removed.
func (a *Auditor) RemoveOlderThan(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(a.AuditDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read audit directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(a.AuditDir, entry.Name())); err != nil {
				log.Printf("Failed to remove audit file %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist.
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
