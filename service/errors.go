package service

import "errors"

var (
	// ErrTopicNotFound 话题不存在、已禁用或已被合并
	ErrTopicNotFound = errors.New("topic not found")
	// ErrInvalidRankColumn 未知的排名维度
	ErrInvalidRankColumn = errors.New("invalid rank column")
	// ErrInvalidActivityType 未知的行为类型
	ErrInvalidActivityType = errors.New("invalid activity type")
	// ErrRefreshFailed 本批次所有话题都聚合失败，缓存保持不变
	ErrRefreshFailed = errors.New("topic stats refresh failed")
)
