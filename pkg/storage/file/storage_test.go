package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

type StorageTestSuite struct {
	suite.Suite
	tempDir string
	path    string
	storage *Storage
}

func TestStorage(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "snapshot-storage-test")
	s.Require().NoError(err)
	s.tempDir = tempDir
	s.path = filepath.Join(tempDir, "nested", "ledger.json")

	store, err := New(s.path, logging.NewDiscard())
	s.Require().NoError(err)
	s.storage = store
}

func (s *StorageTestSuite) TearDownTest() {
	os.RemoveAll(s.tempDir)
}

func (s *StorageTestSuite) TestSetAndGet() {
	ctx := context.Background()
	value := []byte(`{"chips":10000}`)

	s.Require().NoError(s.storage.Set(ctx, "card-royale-user", value))

	got, err := s.storage.Get(ctx, "card-royale-user")
	s.Require().NoError(err)
	s.JSONEq(string(value), string(got))

	// returned slice is a copy
	got[0] = 'X'
	again, err := s.storage.Get(ctx, "card-royale-user")
	s.Require().NoError(err)
	s.Equal(byte('{'), again[0])
}

func (s *StorageTestSuite) TestGetMissing() {
	_, err := s.storage.Get(context.Background(), "missing")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *StorageTestSuite) TestPersistsAcrossInstances() {
	ctx := context.Background()
	s.Require().NoError(s.storage.Set(ctx, "a", []byte("1")))
	s.Require().NoError(s.storage.Set(ctx, "b", []byte("2")))
	s.Require().NoError(s.storage.Delete(ctx, "a"))

	reopened, err := New(s.path, logging.NewDiscard())
	s.Require().NoError(err)

	_, err = reopened.Get(ctx, "a")
	s.ErrorIs(err, storage.ErrNotFound)

	got, err := reopened.Get(ctx, "b")
	s.Require().NoError(err)
	s.Equal([]byte("2"), got)
}

func (s *StorageTestSuite) TestCorruptFileStartsEmpty() {
	ctx := context.Background()
	testCases := []struct {
		name string
		data string
	}{
		{name: "truncated", data: `{"card-royale-user":{"key":"card-royale-user","val`},
		{name: "not json", data: "{not json"},
		{name: "wrong shape", data: `["a","b"]`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			bad := filepath.Join(s.tempDir, tc.name+".json")
			s.Require().NoError(os.WriteFile(bad, []byte(tc.data), 0644))

			store, err := New(bad, logging.NewDiscard())
			s.Require().NoError(err)

			_, err = store.Get(ctx, "card-royale-user")
			s.ErrorIs(err, storage.ErrNotFound)

			kept, err := os.ReadFile(bad + CorruptSuffix)
			s.Require().NoError(err, "bad file is moved aside")
			s.Equal(tc.data, string(kept))

			s.Require().NoError(store.Set(ctx, "card-royale-user", []byte("{}")))
			reopened, err := New(bad, logging.NewDiscard())
			s.Require().NoError(err)
			got, err := reopened.Get(ctx, "card-royale-user")
			s.Require().NoError(err)
			s.Equal([]byte("{}"), got)
		})
	}
}

func (s *StorageTestSuite) TestDeleteMissingIsNoop() {
	s.NoError(s.storage.Delete(context.Background(), "never-set"))
}
