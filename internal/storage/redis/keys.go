package redis

import "fmt"

// Key prefix for all session data
const keyPrefix = "scramble"

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}
