package rediscache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/rediscache"
	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
	mr *miniredis.Miniredis
}

func (s *ClientSuite) BeforeTest(_, _ string) {
	s.mr = miniredis.RunT(s.T())
	rediscache.SetClient(redis.NewClient(&redis.Options{Addr: s.mr.Addr()}))
}

func (s *ClientSuite) AfterTest(_, _ string) {
	s.NoError(rediscache.CloseClient())
}

func (s *ClientSuite) Test_Client_Singleton() {
	s.Same(rediscache.Client(), rediscache.Client())
}

func (s *ClientSuite) Test_Ping() {
	s.NoError(rediscache.Ping(context.Background()))

	s.mr.Close()
	s.Error(rediscache.Ping(context.Background()))
}

func (s *ClientSuite) Test_NewClient() {
	client := rediscache.NewClient(&config.RedisConfig{Addr: s.mr.Addr(), DB: 0})
	defer client.Close()

	s.NoError(client.Set(context.Background(), "k", "v", 0).Err())
	val, err := s.mr.Get("k")
	s.NoError(err)
	s.Equal("v", val)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, &ClientSuite{})
}
