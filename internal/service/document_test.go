package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
	repoMocks "thesisrepo/internal/repository/mocks"
	"thesisrepo/internal/storage"
	storeMocks "thesisrepo/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validUploadInput() UploadInput {
	return UploadInput{
		Title:    "Adaptive Routing in Campus Networks",
		Abstract: "A study of routing behavior under load.",
		Authors:  []string{"Dela Cruz, Juan", "Santos, Maria"},
		Adviser:  "Dr. Reyes",
		Program:  "BS Computer Science",
		Year:     2026,
		Keywords: []string{"routing", "networks"},
		Pages:    84,
	}
}

func newDocumentFixture() (*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockUserRepository, DocumentService) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockDocumentRepository)
	mUsers := new(repoMocks.MockUserRepository)
	svc := NewDocumentService(mStore, mRepo, mUsers, 0)
	return mStore, mRepo, mUsers, svc
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		actorID          string
		in               UploadInput
		originalFilename string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				r := strings.NewReader("hello world")
				mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "theses/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "thesis.pdf"},
				}).Return(storage.ObjectInfo{
					Key:         "theses/uuid.pdf",
					Size:        11,
					ContentType: "application/pdf",
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Status == model.StatusPending &&
						doc.OwnerID == testOwnerID &&
						doc.StoragePath == "theses/uuid.pdf" &&
						doc.Title == "Adaptive Routing in Campus Networks"
				})).Return(&model.Document{ID: "gen-id", Status: model.StatusPending}, nil)

				return r
			},
			wantErr: nil,
		},
		{
			name:             "validation error - nil reader",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:    "validation error - missing title",
			actorID: testOwnerID,
			in: func() UploadInput {
				in := validUploadInput()
				in.Title = ""
				return in
			}(),
			originalFilename: "thesis.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidMetadata,
		},
		{
			name:    "validation error - no authors",
			actorID: testOwnerID,
			in: func() UploadInput {
				in := validUploadInput()
				in.Authors = nil
				return in
			}(),
			originalFilename: "thesis.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidMetadata,
		},
		{
			name:             "rejects non-pdf upload",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.docx",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrUnsupportedType,
		},
		{
			name:             "faculty lacks canUpload",
			actorID:          testReviewerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				mUsers.On("FindByID", ctx, testReviewerID).Return(userWithRole(testReviewerID, model.RoleFaculty), nil)
				return strings.NewReader("x")
			},
			wantErr: ErrPermissionDenied,
		},
		{
			name:             "unknown actor",
			actorID:          "ghost",
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				mUsers.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)
				return strings.NewReader("x")
			},
			wantErr: ErrActorNotFound,
		},
		{
			name:             "storage error",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				r := strings.NewReader("hello")
				mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "repository error with successful rollback",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				r := strings.NewReader("hello")
				mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "theses/uuid.pdf"}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:             "repository error with failed rollback",
			actorID:          testOwnerID,
			in:               validUploadInput(),
			originalFilename: "thesis.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) io.Reader {
				r := strings.NewReader("hello")
				mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "theses/uuid.pdf"}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore, mRepo, mUsers, svc := newDocumentFixture()

			r := tt.setupMocks(mStore, mRepo, mUsers)

			doc, err := svc.Upload(ctx, tt.actorID, r, tt.in, tt.originalFilename, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mUsers.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		filter     repository.ListFilter
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.ListFilter{}, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "status filter is passed through",
			filter: repository.ListFilter{Status: model.StatusPublished, Program: "BSCS"},
			limit:  5,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.ListFilter{Status: model.StatusPublished, Program: "BSCS"}, repository.PageQuery{Limit: 5, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.ListFilter{}, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mRepo, _, svc := newDocumentFixture()

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.filter, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mRepo, _, svc := newDocumentFixture()

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path bumps the counter", func(t *testing.T) {
		mStore, mRepo, mUsers, svc := newDocumentFixture()
		mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
		mRepo.On("FindByID", ctx, "doc-id").Return(&model.Document{ID: "doc-id", StoragePath: "theses/x.pdf"}, nil)
		mStore.On("PresignGet", ctx, "theses/x.pdf", downloadURLDefaultTTL).Return("https://signed.example/x.pdf", nil)
		mRepo.On("IncrementDownloads", ctx, "doc-id").Return(nil)

		url, err := svc.DownloadURL(ctx, testOwnerID, "doc-id")
		assert.NoError(t, err)
		assert.Equal(t, "https://signed.example/x.pdf", url)
		mRepo.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("counter failure does not block the download", func(t *testing.T) {
		mStore, mRepo, mUsers, svc := newDocumentFixture()
		mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
		mRepo.On("FindByID", ctx, "doc-id").Return(&model.Document{ID: "doc-id", StoragePath: "theses/x.pdf"}, nil)
		mStore.On("PresignGet", ctx, "theses/x.pdf", downloadURLDefaultTTL).Return("https://signed.example/x.pdf", nil)
		mRepo.On("IncrementDownloads", ctx, "doc-id").Return(errors.New("db fail"))

		url, err := svc.DownloadURL(ctx, testOwnerID, "doc-id")
		assert.NoError(t, err)
		assert.NotEmpty(t, url)
	})

	t.Run("presign error", func(t *testing.T) {
		mStore, mRepo, mUsers, svc := newDocumentFixture()
		mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
		mRepo.On("FindByID", ctx, "doc-id").Return(&model.Document{ID: "doc-id", StoragePath: "theses/x.pdf"}, nil)
		mStore.On("PresignGet", ctx, "theses/x.pdf", mock.AnythingOfType("time.Duration")).Return("", errors.New("presign fail"))

		_, err := svc.DownloadURL(ctx, testOwnerID, "doc-id")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "presign download")
	})

	t.Run("missing document", func(t *testing.T) {
		_, mRepo, mUsers, svc := newDocumentFixture()
		mUsers.On("FindByID", ctx, testOwnerID).Return(userWithRole(testOwnerID, model.RoleStudent), nil)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.DownloadURL(ctx, testOwnerID, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	tests := []struct {
		name       string
		actorID    string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:    "happy path",
			actorID: adminID,
			id:      "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByID", ctx, adminID).Return(userWithRole(adminID, model.RoleAdmin), nil)
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id", StoragePath: "theses/obj.pdf"}, nil)
				mStore.On("Delete", ctx, "theses/obj.pdf").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			actorID:    adminID,
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:    "librarian lacks canDelete",
			actorID: "lib-1",
			id:      "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByID", ctx, "lib-1").Return(userWithRole("lib-1", model.RoleLibrarian), nil)
			},
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "not found",
			actorID: adminID,
			id:      "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByID", ctx, adminID).Return(userWithRole(adminID, model.RoleAdmin), nil)
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:    "storage delete error keeps the row",
			actorID: adminID,
			id:      "storage-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByID", ctx, adminID).Return(userWithRole(adminID, model.RoleAdmin), nil)
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(errors.New("storage fail"))
			},
			wantErr: errors.New("delete storage: storage fail"),
		},
		{
			name:    "repository delete error",
			actorID: adminID,
			id:      "repo-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByID", ctx, adminID).Return(userWithRole(adminID, model.RoleAdmin), nil)
				mRepo.On("FindByID", ctx, "repo-fail-id").Return(&model.Document{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(nil)
				mRepo.On("Delete", ctx, "repo-fail-id").Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore, mRepo, mUsers, svc := newDocumentFixture()

			tt.setupMocks(mStore, mRepo, mUsers)

			err := svc.Delete(ctx, tt.actorID, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) || errors.Is(tt.wantErr, ErrPermissionDenied) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mUsers.AssertExpectations(t)
		})
	}
}

func TestNewDocumentServiceDefaultTTL(t *testing.T) {
	svc := NewDocumentService(nil, nil, nil, -time.Second).(*documentService)
	assert.Equal(t, downloadURLDefaultTTL, svc.downloadTTL)
}
