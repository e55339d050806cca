package utils

import (
	"fmt"
	"net"
	"time"
)

// IsPortInUse checks if the given port is currently in use by any process.
func IsPortInUse(port int) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), time.Second)

	if err != nil {
		return false
	}

	conn.Close()
	return true
}
