package services

import (
	"fmt"

	"gazette/app/hooks"
	"gazette/app/models"
	"gazette/app/repositories"

	"go.uber.org/zap"
)

// ForcedVolumeName is written over every volume name by the pre-save
// demonstration hook, no matter what the caller submitted.
const ForcedVolumeName = "Corrupted Data"

// RegisterShelfHooks wires the shelf's lifecycle hooks into the
// registry. The pre-save hook deliberately clobbers the volume name
// with ForcedVolumeName: it exists to demonstrate that a hook can
// silently override caller intent, and the behavior is pinned by tests.
func RegisterShelfHooks(registry *hooks.Registry, log *zap.Logger) {
	registry.OnPreSave(repositories.VolumeKind, func(entity any) {
		log.Info("pre-save hook received, updating the actual data")
		entity.(*models.Volume).Name = ForcedVolumeName
	})

	registry.OnPostSave(repositories.VolumeKind, func(entity any, created bool) {
		volume := entity.(*models.Volume)
		if created {
			log.Info("new book added",
				zap.String("name", volume.Name),
				zap.String("author", volume.Author))
		} else {
			log.Info("book updated",
				zap.String("name", volume.Name),
				zap.String("author", volume.Author))
		}
	})

	registry.OnPreDelete(repositories.VolumeKind, func(entity any) {
		log.Warn("request to delete book",
			zap.String("name", entity.(*models.Volume).Name))
	})
}

// ShelfService handles business logic for shelf volumes
type ShelfService struct {
	volumes repositories.VolumeRepository
	log     *zap.Logger
}

// NewShelfService creates a new ShelfService
func NewShelfService(volumes repositories.VolumeRepository, log *zap.Logger) *ShelfService {
	return &ShelfService{volumes: volumes, log: log}
}

// SaveVolume validates and persists a volume. The stored record may
// differ from the submitted one: pre-save hooks run inside the
// persistence layer and may transform it.
func (s *ShelfService) SaveVolume(volume *models.Volume) error {
	if err := volume.Validate(); err != nil {
		return fmt.Errorf("invalid volume: %w", err)
	}
	if err := s.volumes.Save(volume); err != nil {
		return err
	}
	s.log.Info("form data saved successfully", zap.Int("id", volume.ID))
	return nil
}

// ListVolumes retrieves all volumes
func (s *ShelfService) ListVolumes() ([]*models.Volume, error) {
	return s.volumes.List()
}

// DeleteVolumesByName removes every volume whose name contains the
// fragment, case-insensitively. Zero matches is logged as an error but
// reported as success: the operation is idempotent.
func (s *ShelfService) DeleteVolumesByName(fragment string) (int, error) {
	s.log.Info("books to be deleted", zap.String("name", fragment))

	deleted, err := s.volumes.DeleteByNameContains(fragment)
	if err != nil {
		return 0, err
	}

	names := make([]string, 0, len(deleted))
	for _, volume := range deleted {
		names = append(names, volume.Name)
	}
	s.log.Info("books matching given name", zap.Strings("matches", names))

	if len(deleted) == 0 {
		s.log.Error("no books with given name found")
	}
	return len(deleted), nil
}
