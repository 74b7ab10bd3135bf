package pipeline

import (
	"bytes"

	"github.com/danmuck/midcrack/internal/chaincode"
	"github.com/danmuck/midcrack/internal/lzw"
	"github.com/danmuck/midcrack/internal/raster"
)

type toCode struct{}

func (toCode) Spec() OperationSpec {
	return OperationSpec{
		Mode:        ModeToCode,
		Name:        "to-code",
		Description: "Converting to mid-crack code",
		Input:       "imageFile.bmp",
		Output:      "midCrackCode.txt",
	}
}

func (toCode) Execute(cfg Config, input []byte) ([]byte, error) {
	g, err := raster.Decode(bytes.NewReader(input), cfg.Raster)
	if err != nil {
		return nil, err
	}
	code, err := chaincode.Encode(g)
	if err != nil {
		return nil, err
	}
	return code.Bytes(), nil
}

type fromCode struct{}

func (fromCode) Spec() OperationSpec {
	return OperationSpec{
		Mode:        ModeFromCode,
		Name:        "from-code",
		Description: "Converting from mid-crack code",
		Input:       "midCrackCode.txt",
		Output:      "imageFile.bmp",
	}
}

func (fromCode) Execute(cfg Config, input []byte) ([]byte, error) {
	code, err := chaincode.ParseCode(input)
	if err != nil {
		return nil, err
	}
	g, err := chaincode.Decode(code, cfg.Decode)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(raster.FileSize(g.Height(), g.Width()))
	if err := raster.Encode(&buf, g, cfg.Raster); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type compress struct{}

func (compress) Spec() OperationSpec {
	return OperationSpec{
		Mode:        ModeCompress,
		Name:        "compress",
		Description: "Compressing mid-crack code",
		Input:       "midCrackCode.txt",
		Output:      "compressedMidCrackCode.bin",
	}
}

func (compress) Execute(cfg Config, input []byte) ([]byte, error) {
	// validate through the chain code parser so the text form rules match -i
	code, err := chaincode.ParseCode(input)
	if err != nil {
		return nil, err
	}
	return lzw.Encode(code.Bytes(), cfg.WidthPolicy)
}

type decompress struct{}

func (decompress) Spec() OperationSpec {
	return OperationSpec{
		Mode:        ModeDecompress,
		Name:        "decompress",
		Description: "Decompressing mid-crack code",
		Input:       "compressedMidCrackCode.bin",
		Output:      "midCrackCode.txt",
	}
}

func (decompress) Execute(_ Config, input []byte) ([]byte, error) {
	return lzw.Decode(input)
}
