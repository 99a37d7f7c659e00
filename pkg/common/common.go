package common

import (
	"math/rand"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/bcrypt"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

func getSnowflakeNode() *snowflake.Node {
	snowflakeOnce.Do(func() {
		node := int64(rand.Intn(1024))
		var err error
		snowflakeNode, err = snowflake.NewNode(node)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode
}

// UUIDint64 returns a time-ordered unique int64 identifier.
func UUIDint64() int64 {
	return getSnowflakeNode().Generate().Int64()
}

// UUID returns the string form of a snowflake identifier.
func UUID() string {
	return getSnowflakeNode().Generate().String()
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
