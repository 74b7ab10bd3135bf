package pipeline

import (
	"github.com/danmuck/midcrack/internal/chaincode"
	"github.com/danmuck/midcrack/internal/lzw"
	"github.com/danmuck/midcrack/internal/raster"
)

// Mode is the single-letter CLI flag selecting an operation.
type Mode string

const (
	ModeToCode     Mode = "m"
	ModeFromCode   Mode = "i"
	ModeCompress   Mode = "c"
	ModeDecompress Mode = "d"
)

// OperationSpec describes one registered mode.
type OperationSpec struct {
	Mode        Mode
	Name        string
	Description string
	Input       string
	Output      string
}

// Operation turns one input artifact into one output artifact.
type Operation interface {
	Spec() OperationSpec
	Execute(cfg Config, input []byte) ([]byte, error)
}

// Config carries the tunables shared by all operations.
type Config struct {
	Raster          raster.Options
	Decode          chaincode.Options
	WidthPolicy     lzw.WidthPolicy
	MetricsTextfile string
}

func DefaultConfig() Config {
	return Config{
		Raster:      raster.DefaultOptions(),
		Decode:      chaincode.Options{},
		WidthPolicy: lzw.WidthMaxCode,
	}
}
