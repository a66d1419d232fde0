package util

// StampFormat 导出文件名中的时间戳
const StampFormat = "20060102-150405"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 每个测评维度的满分
const MaxSectionScore = 10

const (
	MinWeek    = 1
	MaxWeek    = 8
	MinQuarter = 1
	MaxQuarter = 4
)

const MimeJSON = "application/json"
