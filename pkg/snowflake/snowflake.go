package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 行为日志等表的主键
func GenID() int64 {
	return node.Generate().Int64()
}
