package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchcms/internal/cache"
	"churchcms/internal/domain"
	"churchcms/internal/repository"
	"churchcms/internal/storage"
)

type CounsellorServiceImpl struct {
	repo        repository.CounsellorRepository
	fileStorage storage.FileStorage
	cache       cache.CounsellorCache
	logger      *zap.Logger
}

func NewCounsellorService(
	repo repository.CounsellorRepository,
	fileStorage storage.FileStorage,
	counsellorCache cache.CounsellorCache,
	logger *zap.Logger,
) *CounsellorServiceImpl {
	if counsellorCache == nil {
		counsellorCache = cache.NoopCache{}
	}
	return &CounsellorServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		cache:       counsellorCache,
		logger:      logger,
	}
}

// newCounsellorID builds a readable, unique id such as "grace-mensah-1a2b3c".
func newCounsellorID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > 40 {
		slug = strings.TrimSuffix(slug[:40], "-")
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	if slug == "" {
		return "counsellor-" + suffix
	}
	return slug + "-" + suffix
}

func (s *CounsellorServiceImpl) Create(ctx context.Context, dto domain.CreateCounsellorDTO) (*domain.Counsellor, error) {
	if !dto.IsOnline && !dto.IsInPerson {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"bookingType": "Counsellor must offer online or in-person sessions",
		}}
	}

	now := time.Now()
	counsellor := domain.Counsellor{
		ID:                newCounsellorID(dto.Name),
		Name:              strings.TrimSpace(dto.Name),
		Title:             strings.TrimSpace(dto.Title),
		IsOnline:          dto.IsOnline,
		IsInPerson:        dto.IsInPerson,
		Specializations:   dto.Specializations,
		YearsOfExperience: dto.YearsOfExperience,
		Rating:            dto.Rating,
		ReviewCount:       dto.ReviewCount,
		Bio:               dto.Bio,
		Email:             strings.TrimSpace(dto.Email),
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if counsellor.Specializations == nil {
		counsellor.Specializations = []string{}
	}

	if err := s.repo.Create(ctx, counsellor); err != nil {
		s.logger.Error("failed to create counsellor", zap.String("name", counsellor.Name), zap.Error(err))
		return nil, fmt.Errorf("create counsellor: %w", err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("counsellor created", zap.String("id", counsellor.ID))

	return &counsellor, nil
}

func (s *CounsellorServiceImpl) GetByID(ctx context.Context, id string) (*domain.Counsellor, error) {
	counsellor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCounsellorNotFound) {
			s.logger.Error("failed to get counsellor", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return counsellor, nil
}

func (s *CounsellorServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateCounsellorDTO) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	online := current.IsOnline
	if dto.IsOnline != nil {
		online = *dto.IsOnline
	}
	inPerson := current.IsInPerson
	if dto.IsInPerson != nil {
		inPerson = *dto.IsInPerson
	}
	if !online && !inPerson {
		return &domain.ValidationError{Fields: map[string]string{
			"bookingType": "Counsellor must offer online or in-person sessions",
		}}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("failed to update counsellor", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// Delete deactivates the counsellor; existing bookings keep their reference.
func (s *CounsellorServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrCounsellorNotFound) {
			s.logger.Error("failed to deactivate counsellor", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("counsellor deactivated", zap.String("id", id))
	return nil
}

func (s *CounsellorServiceImpl) List(ctx context.Context, bookingType *domain.BookingType) ([]domain.Counsellor, error) {
	key := ""
	if bookingType != nil {
		if !bookingType.IsValid() {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"bookingType": "Booking type must be online or in-person",
			}}
		}
		key = string(*bookingType)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	counsellors, err := s.repo.List(ctx, domain.CounsellorFilter{BookingType: bookingType, ActiveOnly: true})
	if err != nil {
		s.logger.Error("failed to list counsellors", zap.Error(err))
		return nil, fmt.Errorf("list counsellors: %w", err)
	}

	s.cache.Set(ctx, key, counsellors)
	return counsellors, nil
}

func (s *CounsellorServiceImpl) ListAll(ctx context.Context) ([]domain.Counsellor, error) {
	counsellors, err := s.repo.List(ctx, domain.CounsellorFilter{})
	if err != nil {
		s.logger.Error("failed to list counsellors", zap.Error(err))
		return nil, fmt.Errorf("list counsellors: %w", err)
	}
	return counsellors, nil
}

func (s *CounsellorServiceImpl) UploadPhoto(ctx context.Context, id string, photo []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("file storage is not configured")
	}

	counsellor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	photoURL, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		if !errors.Is(err, storage.ErrEmptyFile) && !errors.Is(err, storage.ErrNotImage) {
			s.logger.Error("failed to upload counsellor photo", zap.String("id", id), zap.Error(err))
		}
		return "", err
	}

	if err := s.repo.UpdatePhoto(ctx, id, photoURL); err != nil {
		s.logger.Error("failed to save counsellor photo url", zap.String("id", id), zap.Error(err))
		if delErr := s.fileStorage.DeleteFile(ctx, photoURL); delErr != nil {
			s.logger.Warn("failed to remove orphaned photo", zap.String("url", photoURL), zap.Error(delErr))
		}
		return "", err
	}

	if counsellor.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, counsellor.PhotoURL); err != nil {
			s.logger.Warn("failed to delete previous photo", zap.String("url", counsellor.PhotoURL), zap.Error(err))
		}
	}

	s.cache.Invalidate(ctx)
	return photoURL, nil
}
