package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
	"arm-servicedesk/internal/storage"
)

// ErrBackupDisabled is returned when no backup bucket is configured.
var ErrBackupDisabled = errors.New("backup storage is not configured")

// BackupService exports a point-in-time snapshot of both registries to
// object storage. Operator-triggered; there is no schedule.
type BackupService interface {
	Export(ctx context.Context) (string, error)
}

type backupService struct {
	arms      repository.ARMRepository
	tickets   repository.TicketRepository
	storage   storage.Service
	bucket    string
	keyPrefix string
}

func NewBackupService(arms repository.ARMRepository, tickets repository.TicketRepository, store storage.Service, bucket, keyPrefix string) BackupService {
	return &backupService{
		arms:      arms,
		tickets:   tickets,
		storage:   store,
		bucket:    strings.TrimSpace(bucket),
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

type snapshot struct {
	ExportedAt string          `json:"exported_at"`
	ARMs       []domain.ARM    `json:"arms"`
	Tickets    []domain.Ticket `json:"tickets"`
}

func (s *backupService) Export(ctx context.Context) (string, error) {
	if s.storage == nil || s.bucket == "" {
		return "", ErrBackupDisabled
	}

	arms, err := s.arms.List(ctx)
	if err != nil {
		return "", err
	}
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	body, err := json.MarshalIndent(snapshot{
		ExportedAt: now.Format(time.RFC3339),
		ARMs:       arms,
		Tickets:    tickets,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshot-%s.json", now.Format("20060102-150405"))
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	location, err := s.storage.PutObject(ctx, body, storage.PutOptions{
		Bucket:      s.bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return location, nil
}
