package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"churchcms/internal/domain"
	"churchcms/internal/repository/mocks"
	"churchcms/internal/storage"
)

func newCounsellorSvc(t *testing.T) (*CounsellorServiceImpl, *mocks.CounsellorRepository, *mockCache, *mockStorage) {
	repo := mocks.NewCounsellorRepository(t)
	c := &mockCache{}
	fs := &mockStorage{}
	t.Cleanup(func() {
		c.AssertExpectations(t)
		fs.AssertExpectations(t)
	})
	return NewCounsellorService(repo, fs, c, zap.NewNop()), repo, c, fs
}

func TestNewCounsellorID(t *testing.T) {
	assert.Regexp(t, `^grace-mensah-[0-9a-f]{6}$`, newCounsellorID("  Grace Mensah "))
	assert.Regexp(t, `^rev-dr-k-asante-[0-9a-f]{6}$`, newCounsellorID("Rev. Dr. K. Asante"))
	assert.Regexp(t, `^counsellor-[0-9a-f]{6}$`, newCounsellorID("!!!"))
	assert.NotEqual(t, newCounsellorID("Grace"), newCounsellorID("Grace"))
}

func TestCounsellorService_Create(t *testing.T) {
	svc, repo, c, _ := newCounsellorSvc(t)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(cn domain.Counsellor) bool {
		return cn.Name == "Grace Mensah" && cn.IsActive && cn.Specializations != nil
	})).Return(nil)
	c.On("Invalidate", mock.Anything).Return()

	created, err := svc.Create(context.Background(), domain.CreateCounsellorDTO{
		Name:     " Grace Mensah",
		IsOnline: true,
		Email:    "grace@church.org",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^grace-mensah-`, created.ID)
}

func TestCounsellorService_Create_NeedsModality(t *testing.T) {
	svc, _, _, _ := newCounsellorSvc(t)

	_, err := svc.Create(context.Background(), domain.CreateCounsellorDTO{Name: "Grace"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "bookingType")
}

func TestCounsellorService_Update_CannotDropBothModalities(t *testing.T) {
	svc, repo, _, _ := newCounsellorSvc(t)
	repo.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)

	off := false
	err := svc.Update(context.Background(), "c1", domain.UpdateCounsellorDTO{IsOnline: &off})

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCounsellorService_List_UsesCache(t *testing.T) {
	online := domain.BookingTypeOnline
	cached := []domain.Counsellor{*activeCounsellor()}

	t.Run("hit", func(t *testing.T) {
		svc, _, c, _ := newCounsellorSvc(t)
		c.On("Get", mock.Anything, "online").Return(cached, true)

		list, err := svc.List(context.Background(), &online)
		require.NoError(t, err)
		assert.Equal(t, cached, list)
	})

	t.Run("miss", func(t *testing.T) {
		svc, repo, c, _ := newCounsellorSvc(t)
		c.On("Get", mock.Anything, "").Return(nil, false)
		repo.On("List", mock.Anything, domain.CounsellorFilter{ActiveOnly: true}).Return(cached, nil)
		c.On("Set", mock.Anything, "", cached).Return()

		list, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, cached, list)
	})

	t.Run("bad type", func(t *testing.T) {
		svc, _, _, _ := newCounsellorSvc(t)
		both := domain.BookingTypeBoth

		_, err := svc.List(context.Background(), &both)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestCounsellorService_Delete(t *testing.T) {
	svc, repo, c, _ := newCounsellorSvc(t)
	repo.On("Deactivate", mock.Anything, "c1").Return(nil)
	repo.On("Deactivate", mock.Anything, "nope").Return(domain.ErrCounsellorNotFound)
	c.On("Invalidate", mock.Anything).Return().Once()

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), domain.ErrCounsellorNotFound)
}

func TestCounsellorService_UploadPhoto(t *testing.T) {
	photo := []byte("png-bytes")

	t.Run("replaces previous photo", func(t *testing.T) {
		svc, repo, c, fs := newCounsellorSvc(t)
		current := activeCounsellor()
		current.PhotoURL = "https://cdn/counsellors/old.png"
		repo.On("GetByID", mock.Anything, "c1").Return(current, nil)
		fs.On("UploadFile", mock.Anything, photo, "me.png").Return("https://cdn/counsellors/new.png", nil)
		repo.On("UpdatePhoto", mock.Anything, "c1", "https://cdn/counsellors/new.png").Return(nil)
		fs.On("DeleteFile", mock.Anything, "https://cdn/counsellors/old.png").Return(nil)
		c.On("Invalidate", mock.Anything).Return()

		url, err := svc.UploadPhoto(context.Background(), "c1", photo, "me.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/counsellors/new.png", url)
	})

	t.Run("removes orphan when saving fails", func(t *testing.T) {
		svc, repo, _, fs := newCounsellorSvc(t)
		repo.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)
		fs.On("UploadFile", mock.Anything, photo, "me.png").Return("https://cdn/counsellors/new.png", nil)
		repo.On("UpdatePhoto", mock.Anything, "c1", "https://cdn/counsellors/new.png").Return(errors.New("db down"))
		fs.On("DeleteFile", mock.Anything, "https://cdn/counsellors/new.png").Return(nil)

		_, err := svc.UploadPhoto(context.Background(), "c1", photo, "me.png")
		assert.Error(t, err)
	})

	t.Run("rejects non-image", func(t *testing.T) {
		svc, repo, _, fs := newCounsellorSvc(t)
		repo.On("GetByID", mock.Anything, "c1").Return(activeCounsellor(), nil)
		fs.On("UploadFile", mock.Anything, photo, "me.txt").Return("", storage.ErrNotImage)

		_, err := svc.UploadPhoto(context.Background(), "c1", photo, "me.txt")
		assert.ErrorIs(t, err, storage.ErrNotImage)
	})
}
