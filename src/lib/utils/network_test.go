package utils_test

import (
	"net"
	"testing"

	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"github.com/stretchr/testify/suite"
)

type NetworkTestSuite struct {
	suite.Suite
}

func (s *NetworkTestSuite) Test_IsPortInUse() {
	listener, err := net.Listen("tcp", "localhost:0")
	s.NoError(err)

	port := listener.Addr().(*net.TCPAddr).Port
	s.True(utils.IsPortInUse(port))

	listener.Close()
	s.False(utils.IsPortInUse(port))
}

func TestNetworkTestSuite(t *testing.T) {
	suite.Run(t, &NetworkTestSuite{})
}
