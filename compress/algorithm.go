package compress

import (
	lz4 "github.com/bkaradzic/go-lz4"
	"github.com/golang/snappy"
)

// AlgorithmType is the numeric id of an algorithm as stored in the header.
type AlgorithmType uint16

const (
	// AlgoNone does not compress at all.
	AlgoNone AlgorithmType = iota

	// AlgoSnappy uses google's snappy; fast with moderate ratio.
	AlgoSnappy

	// AlgoLZ4 trades a bit of speed for a better ratio.
	AlgoLZ4
)

// IsValid tells if the type was once written by a known writer.
func (at AlgorithmType) IsValid() bool {
	_, ok := algoMap[at]
	return ok
}

func (at AlgorithmType) String() string {
	name, ok := algoToString[at]
	if !ok {
		return "unknown"
	}

	return name
}

// Algorithm is the common interface for all supported algorithms.
type Algorithm interface {
	Encode([]byte) ([]byte, error)
	Decode([]byte) ([]byte, error)
}

type noneAlgo struct{}
type snappyAlgo struct{}
type lz4Algo struct{}

var (
	algoMap = map[AlgorithmType]Algorithm{
		AlgoNone:   noneAlgo{},
		AlgoSnappy: snappyAlgo{},
		AlgoLZ4:    lz4Algo{},
	}

	algoToString = map[AlgorithmType]string{
		AlgoNone:   "none",
		AlgoSnappy: "snappy",
		AlgoLZ4:    "lz4",
	}

	stringToAlgo = map[string]AlgorithmType{
		"none":   AlgoNone,
		"snappy": AlgoSnappy,
		"lz4":    AlgoLZ4,
	}
)

func (a noneAlgo) Encode(src []byte) ([]byte, error) {
	return src, nil
}

func (a noneAlgo) Decode(src []byte) ([]byte, error) {
	return src, nil
}

func (a snappyAlgo) Encode(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (a snappyAlgo) Decode(src []byte) ([]byte, error) {
	return snappy.Decode(nil, src)
}

func (a lz4Algo) Encode(src []byte) ([]byte, error) {
	return lz4.Encode(nil, src)
}

func (a lz4Algo) Decode(src []byte) ([]byte, error) {
	return lz4.Decode(nil, src)
}

// AlgorithmFromType returns the implementation behind an AlgorithmType.
func AlgorithmFromType(at AlgorithmType) (Algorithm, error) {
	if algo, ok := algoMap[at]; ok {
		return algo, nil
	}

	return nil, ErrBadAlgo
}

// AlgoFromString tries to convert a human readable name to AlgorithmType.
func AlgoFromString(s string) (AlgorithmType, error) {
	algoType, ok := stringToAlgo[s]
	if !ok {
		return 0, ErrBadAlgo
	}

	return algoType, nil
}
