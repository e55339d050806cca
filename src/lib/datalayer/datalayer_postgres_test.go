package datalayer_test

import (
	"context"
	"testing"

	"github.com/stormkit-io/fnmanagement/src/lib/database/databasetest"
	"github.com/stormkit-io/fnmanagement/src/lib/datalayer"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stretchr/testify/suite"
)

type PostgresClientSuite struct {
	suite.Suite
	conn   databasetest.TestDB
	opener *datalayer.PostgresOpener
}

func (s *PostgresClientSuite) SetupSuite() {
	if !databasetest.Available() {
		s.T().Skip("POSTGRES_HOST is not set")
	}
}

func (s *PostgresClientSuite) BeforeTest(suiteName, testName string) {
	s.conn = databasetest.InitTx(suiteName + testName)
	s.opener = datalayer.NewPostgresOpener(s.conn.DB)
}

func (s *PostgresClientSuite) AfterTest(_, _ string) {
	s.conn.CloseTx()
}

func (s *PostgresClientSuite) Test_SetAndGet() {
	ctx := context.Background()
	dlc, err := s.opener.Open(ctx, "s1")
	s.NoError(err)
	defer dlc.Shutdown()

	s.NoError(dlc.Set(ctx, "grain_environment_variables_fn-123", "FOO=bar"))
	s.NoError(dlc.Set(ctx, "grain_environment_variables_fn-123", "FOO=baz"))

	val, found, err := dlc.Get(ctx, "grain_environment_variables_fn-123")
	s.NoError(err)
	s.True(found)
	s.Equal("FOO=baz", val)
}

func (s *PostgresClientSuite) Test_Get_Missing() {
	ctx := context.Background()
	dlc, err := s.opener.Open(ctx, "s1")
	s.NoError(err)
	defer dlc.Shutdown()

	val, found, err := dlc.Get(ctx, "grain_environment_variables_fn-404")
	s.NoError(err)
	s.False(found)
	s.Equal("", val)
}

func (s *PostgresClientSuite) Test_Shutdown() {
	dlc, err := s.opener.Open(context.Background(), "s1")
	s.NoError(err)

	s.NoError(dlc.Shutdown())
	s.ErrorIs(dlc.Shutdown(), errors.ErrClientClosed)
}

func TestPostgresClientSuite(t *testing.T) {
	suite.Run(t, &PostgresClientSuite{})
}
