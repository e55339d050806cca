package limiter_test

import (
	"testing"
	"time"

	"github.com/stormkit-io/fnmanagement/src/lib/shttp/limiter"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
}

func (s *StoreSuite) Test_NewStore_Defaults() {
	store := limiter.NewStore(&limiter.Options{Limit: 1000, Duration: time.Hour})

	s.Equal(int64(1000), store.Limit)
	s.Equal(time.Hour, store.Duration)
	s.Equal(10, store.Burst)
	s.Equal([]string{"ip", "path"}, store.Hash)
}

func (s *StoreSuite) Test_Get_CountsVisits() {
	store := limiter.NewStore(nil)

	store.Get("8.8.8.8")
	visit, reset := store.Get("8.8.8.8")

	s.Equal(int64(2), visit.Count)
	s.WithinDuration(time.Now().Add(time.Minute), reset, time.Second)

	next, _ := store.Get("8.8.8.8")
	s.Same(visit, next)
}

func (s *StoreSuite) Test_Prune() {
	store := limiter.NewStore(&limiter.Options{Duration: time.Millisecond})
	store.Get("8.8.8.8")

	time.Sleep(5 * time.Millisecond)
	store.Prune()

	s.Empty(store.Visits)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{})
}
