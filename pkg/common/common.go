package common

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			zap.S().Fatalf("init snowflake node: %v", err)
		}
	})
	return node
}

// UUIDint64 returns a time-ordered unique int64
func UUIDint64() int64 {
	return idNode().Generate().Int64()
}

// UUIDString returns UUIDint64 as a base-10 string
func UUIDString() string {
	return idNode().Generate().String()
}
