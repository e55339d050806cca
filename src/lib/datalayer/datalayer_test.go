package datalayer_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/datalayer"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/rediscache"
	"github.com/stretchr/testify/suite"
)

type OpenerSuite struct {
	suite.Suite
}

func (s *OpenerSuite) Test_NewOpener_Redis() {
	mr := miniredis.RunT(s.T())
	rediscache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer rediscache.CloseClient()

	opener, err := datalayer.NewOpener(&config.DataLayerConfig{Backend: config.DataLayerRedis})
	s.NoError(err)
	s.IsType(&datalayer.RedisOpener{}, opener)
}

func (s *OpenerSuite) Test_NewOpener_Unknown() {
	opener, err := datalayer.NewOpener(&config.DataLayerConfig{Backend: "riak"})
	s.Nil(opener)
	s.True(errors.Is(err, errors.ErrorTypeConfiguration))
}

func (s *OpenerSuite) Test_OpenerFunc() {
	called := ""
	opener := datalayer.OpenerFunc(func(ctx context.Context, namespace string) (datalayer.Client, error) {
		called = namespace
		return nil, nil
	})

	_, err := opener.Open(context.Background(), "s1")
	s.NoError(err)
	s.Equal("s1", called)
}

func TestOpenerSuite(t *testing.T) {
	suite.Run(t, &OpenerSuite{})
}
