package services

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/users"
	"github.com/google/uuid"
)

var errRestrict = errors.New("violates foreign key constraint (restrict)")

// memStore mimics the relational schema: ownership-scoped lookups,
// composite foreign keys and ON DELETE RESTRICT.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	folders map[string]*models.Folder
	files   map[string]*models.File
	tokens  map[string]*models.RefreshToken

	userCreateErr   error
	rootCreateErr   error
	fileCreateErr   error
	fileDeleteErr   error
	folderDeleteErr error
	listErr         error

	// beforeFolderDelete runs once, outside the lock, ahead of the next
	// folder row delete.
	beforeFolderDelete func(id string)
}

func (m *memStore) takeBeforeFolderDelete() func(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.beforeFolderDelete
	m.beforeFolderDelete = nil
	return h
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		folders: map[string]*models.Folder{},
		files:   map[string]*models.File{},
		tokens:  map[string]*models.RefreshToken{},
	}
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// addUser creates a user with its root folder and returns both ids.
func (m *memStore) addUser(name string) (userID, rootID string) {
	u, err := (&memUsers{m}).Create(context.Background(), &models.User{UserName: name})
	if err != nil {
		panic(err)
	}
	root, err := (&memFolders{m}).CreateRoot(context.Background(), u.ID)
	if err != nil {
		panic(err)
	}
	return u.ID, root.ID
}

func (m *memStore) folderCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, f := range m.folders {
		if f.UserID == userID {
			n++
		}
	}
	return n
}

func (m *memStore) fileCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, f := range m.files {
		if f.UserID == userID {
			n++
		}
	}
	return n
}

func (m *memStore) hasFolder(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.folders[id]
	return ok
}

func (m *memStore) hasFile(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[id]
	return ok
}

type memUsers struct{ m *memStore }

func (r *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.userCreateErr != nil {
		return nil, r.m.userCreateErr
	}
	for _, u := range r.m.users {
		if u.UserName == user.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.m.users[user.ID] = clone(user)
	return user, nil
}

func (r *memUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.UserName == login {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

type memFolders struct{ m *memStore }

func (r *memFolders) CreateRoot(ctx context.Context, userID string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.rootCreateErr != nil {
		return nil, r.m.rootCreateErr
	}
	for _, f := range r.m.folders {
		if f.UserID == userID && f.ParentID == nil {
			return nil, common.ErrorAlreadyExists
		}
	}
	f := &models.Folder{ID: uuid.NewString(), UserID: userID, Name: models.RootFolderName, DateModified: time.Now()}
	r.m.folders[f.ID] = f
	return clone(f), nil
}

func (r *memFolders) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if folder.ParentID == nil {
		return nil, errors.New("parent id is required")
	}
	parent, ok := r.m.folders[*folder.ParentID]
	if !ok || parent.UserID != folder.UserID {
		return nil, common.ErrorNotFound
	}
	parentID := parent.ID
	f := &models.Folder{ID: uuid.NewString(), UserID: folder.UserID, ParentID: &parentID, Name: folder.Name, DateModified: time.Now()}
	r.m.folders[f.ID] = f
	return clone(f), nil
}

func (r *memFolders) GetOwned(ctx context.Context, userID, id string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.folders[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return clone(f), nil
}

func (r *memFolders) GetRoot(ctx context.Context, userID string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, f := range r.m.folders {
		if f.UserID == userID && f.ParentID == nil {
			return clone(f), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memFolders) ListChildren(ctx context.Context, userID, parentID string) ([]*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.listErr != nil {
		return nil, r.m.listErr
	}
	var out []*models.Folder
	for _, f := range r.m.folders {
		if f.UserID == userID && f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, clone(f))
		}
	}
	slices.SortFunc(out, func(a, b *models.Folder) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *memFolders) Rename(ctx context.Context, userID, id, name string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.folders[id]
	if !ok || f.UserID != userID || f.ParentID == nil {
		return nil, common.ErrorNotFound
	}
	f.Name = name
	f.DateModified = time.Now()
	return clone(f), nil
}

func (r *memFolders) Delete(ctx context.Context, userID, id string) error {
	if h := r.m.takeBeforeFolderDelete(); h != nil {
		h(id)
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.folderDeleteErr != nil {
		return r.m.folderDeleteErr
	}
	f, ok := r.m.folders[id]
	if !ok || f.UserID != userID || f.ParentID == nil {
		return common.ErrorNotFound
	}
	for _, c := range r.m.folders {
		if c.ParentID != nil && *c.ParentID == id {
			return errRestrict
		}
	}
	for _, c := range r.m.files {
		if c.FolderID == id {
			return errRestrict
		}
	}
	delete(r.m.folders, id)
	return nil
}

type memFiles struct{ m *memStore }

func (r *memFiles) Create(ctx context.Context, file *models.File) (*models.File, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.fileCreateErr != nil {
		return nil, r.m.fileCreateErr
	}
	folder, ok := r.m.folders[file.FolderID]
	if !ok || folder.UserID != file.UserID {
		return nil, common.ErrorNotFound
	}
	for _, f := range r.m.files {
		if f.URL == file.URL {
			return nil, common.ErrorAlreadyExists
		}
	}
	f := clone(file)
	f.ID = uuid.NewString()
	f.DateModified = time.Now()
	r.m.files[f.ID] = f
	return clone(f), nil
}

func (r *memFiles) GetOwned(ctx context.Context, userID, id string) (*models.File, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.files[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return clone(f), nil
}

func (r *memFiles) ListByFolder(ctx context.Context, userID, folderID string) ([]*models.File, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.listErr != nil {
		return nil, r.m.listErr
	}
	var out []*models.File
	for _, f := range r.m.files {
		if f.UserID == userID && f.FolderID == folderID {
			out = append(out, clone(f))
		}
	}
	slices.SortFunc(out, func(a, b *models.File) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *memFiles) Delete(ctx context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.fileDeleteErr != nil {
		return r.m.fileDeleteErr
	}
	f, ok := r.m.files[id]
	if !ok || f.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.m.files, id)
	return nil
}

func (r *memFiles) ListURLs(ctx context.Context) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.listErr != nil {
		return nil, r.m.listErr
	}
	var out []string
	for _, f := range r.m.files {
		out = append(out, f.URL)
	}
	return out, nil
}

type memTokens struct{ m *memStore }

func (r *memTokens) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[token] = &models.RefreshToken{ID: uuid.NewString(), UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *memTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(t), nil
}

func (r *memTokens) Delete(ctx context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.tokens, token)
	return nil
}

type memRepoManager struct{ m *memStore }

func (rm *memRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (rm *memRepoManager) Users(dbx.DBTX) users.Repository                 { return &memUsers{rm.m} }
func (rm *memRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return &memTokens{rm.m} }
func (rm *memRepoManager) Folders(dbx.DBTX) folders.Repository             { return &memFolders{rm.m} }
func (rm *memRepoManager) Files(dbx.DBTX) files.Repository                 { return &memFiles{rm.m} }

// faultyBlobs wraps the in-memory blob store with per-call failure hooks.
type faultyBlobs struct {
	*blobstore.MemoryStore

	mu        sync.Mutex
	putErr    error
	getErr    error
	listErr   error
	deleteErr func(key string) error
	afterPut  func(key string)
	deleted   []string
}

func newFaultyBlobs() *faultyBlobs {
	return &faultyBlobs{MemoryStore: blobstore.NewMemoryStore()}
}

func (b *faultyBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b.putErr != nil {
		return b.putErr
	}
	if err := b.MemoryStore.Put(ctx, key, data, contentType); err != nil {
		return err
	}
	if b.afterPut != nil {
		b.afterPut(key)
	}
	return nil
}

func (b *faultyBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.MemoryStore.Get(ctx, key)
}

func (b *faultyBlobs) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	hook := b.deleteErr
	b.mu.Unlock()
	if hook != nil {
		if err := hook(key); err != nil {
			return err
		}
	}
	if err := b.MemoryStore.Delete(ctx, key); err != nil {
		return err
	}
	b.mu.Lock()
	b.deleted = append(b.deleted, key)
	b.mu.Unlock()
	return nil
}

func (b *faultyBlobs) List(ctx context.Context, prefix string) ([]string, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.MemoryStore.List(ctx, prefix)
}

// recordingMetrics counts calls so tests can assert on inconsistencies.
type recordingMetrics struct {
	mu              sync.Mutex
	operations      map[string]int
	failures        map[string]int
	inconsistencies map[string]int
	bytes           map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		operations:      map[string]int{},
		failures:        map[string]int{},
		inconsistencies: map[string]int{},
		bytes:           map[string]int{},
	}
}

func (r *recordingMetrics) ObserveOperation(op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[op]++
	if err != nil {
		r.failures[op]++
	}
}

func (r *recordingMetrics) StorageInconsistency(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inconsistencies[kind]++
}

func (r *recordingMetrics) RecordBytes(direction string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bytes[direction] += n
}

func (r *recordingMetrics) inconsistency(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inconsistencies[kind]
}
