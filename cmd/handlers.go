package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	e "github.com/pkg/errors"
	"github.com/sahib/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/sahib/stencil"
	"github.com/sahib/stencil/compress"
	"github.com/sahib/stencil/source"
)

// parseCuts parses "OFF:LEN" strings as passed via --range.
func parseCuts(specs []string) ([]stencil.Cut, error) {
	cuts := make([]stencil.Cut, 0, len(specs))
	for _, spec := range specs {
		split := strings.SplitN(spec, ":", 2)
		if len(split) != 2 {
			return nil, e.Errorf("bad range `%s`; expected OFF:LEN", spec)
		}

		off, err := strconv.ParseInt(split[0], 10, 64)
		if err != nil {
			return nil, e.Wrapf(err, "bad offset in `%s`", spec)
		}

		size, err := strconv.ParseInt(split[1], 10, 64)
		if err != nil {
			return nil, e.Wrapf(err, "bad length in `%s`", spec)
		}

		cuts = append(cuts, stencil.Cut{Off: off, Size: size})
	}

	return cuts, nil
}

func openOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
}

func closeOutput(fd *os.File) {
	if fd != os.Stdout {
		if err := fd.Close(); err != nil {
			log.Warningf("failed to close output: %v", err)
		}
	}
}

func handleCut(ctx *cli.Context, cfg *config.Config) int {
	path := ctx.Args().First()

	cuts, err := parseCuts(ctx.StringSlice("range"))
	if err != nil {
		log.Errorf("%v", err)
		return BadArgs
	}

	fd, err := source.Open(path)
	if err != nil {
		log.Errorf("failed to open input: %v", err)
		return IOFailed
	}

	defer fd.Close()

	var src stencil.Source = fd
	if ctx.Bool("zip") {
		// Address ranges of the uncompressed content:
		src = compress.NewReader(fd)
	}

	table, err := stencil.NewTable(src, cuts)
	if err != nil {
		log.Errorf("bad stencil table: %v", err)
		return BadArgs
	}

	outFd, err := openOutput(ctx.String("output"))
	if err != nil {
		log.Errorf("failed to open output: %v", err)
		return IOFailed
	}

	defer closeOutput(outFd)

	view := stencil.NewFileBuffer(table, nil, int(cfg.Int("io.buffer_size")))
	n, err := view.WriteTo(outFd)
	if err != nil {
		log.Errorf("failed to stream view: %v", err)
		return IOFailed
	}

	log.Infof("wrote %s from %d ranges", humanize.Bytes(uint64(n)), table.Len())
	return Success
}

func handleJoin(ctx *cli.Context, cfg *config.Config) int {
	joined, err := stencil.JoinPaths(afero.NewOsFs(), nil, ctx.Args()...)
	if err != nil {
		log.Errorf("failed to join: %v", err)
		return IOFailed
	}

	outFd, err := openOutput(ctx.String("output"))
	if err != nil {
		log.Errorf("failed to open output: %v", err)
		return IOFailed
	}

	defer closeOutput(outFd)

	n, err := joined.WriteTo(outFd)
	if err != nil {
		log.Errorf("failed to stream joined view: %v", err)
		return IOFailed
	}

	log.Infof(
		"joined %d files to %s",
		len(ctx.Args()),
		humanize.Bytes(uint64(n)),
	)
	return Success
}

func guessAlgo(path string, fd io.ReadSeeker) (compress.AlgorithmType, error) {
	headerBuf := make([]byte, compress.HeaderSizeThreshold)
	n, err := io.ReadFull(fd, headerBuf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return compress.AlgoNone, err
	}

	if _, err := fd.Seek(0, io.SeekStart); err != nil {
		return compress.AlgoNone, err
	}

	return compress.GuessAlgorithm(path, headerBuf[:n])
}

func handleZip(ctx *cli.Context, cfg *config.Config) int {
	path := ctx.Args().First()
	fd, err := os.Open(path)
	if err != nil {
		log.Errorf("failed to open input: %v", err)
		return IOFailed
	}

	defer fd.Close()

	algoName := ctx.String("algo")
	if algoName == "" {
		algoName = cfg.String("compress.algo")
	}

	var algoType compress.AlgorithmType
	if algoName == "guess" {
		algoType, err = guessAlgo(path, fd)
	} else {
		algoType, err = compress.AlgoFromString(algoName)
	}

	if err != nil {
		log.Errorf("cannot determine algorithm: %v", err)
		return BadArgs
	}

	outFd, err := openOutput(ctx.String("output"))
	if err != nil {
		log.Errorf("failed to open output: %v", err)
		return IOFailed
	}

	defer closeOutput(outFd)

	zipW, err := compress.NewWriter(outFd, algoType)
	if err != nil {
		log.Errorf("failed to create writer: %v", err)
		return BadArgs
	}

	n, err := io.Copy(zipW, fd)
	if err != nil {
		log.Errorf("failed to compress: %v", err)
		return IOFailed
	}

	if err := zipW.Close(); err != nil {
		log.Errorf("failed to finish stream: %v", err)
		return IOFailed
	}

	log.Infof("compressed %s with %s", humanize.Bytes(uint64(n)), algoType)
	return Success
}

func handleUnzip(ctx *cli.Context, cfg *config.Config) int {
	fd, err := os.Open(ctx.Args().First())
	if err != nil {
		log.Errorf("failed to open input: %v", err)
		return IOFailed
	}

	defer fd.Close()

	outFd, err := openOutput(ctx.String("output"))
	if err != nil {
		log.Errorf("failed to open output: %v", err)
		return IOFailed
	}

	defer closeOutput(outFd)

	n, err := compress.NewReader(fd).WriteTo(outFd)
	if err != nil {
		log.Errorf("failed to decompress: %v", err)
		return IOFailed
	}

	log.Infof("decompressed %s", humanize.Bytes(uint64(n)))
	return Success
}

func handleVersion(ctx *cli.Context) error {
	fmt.Println(stencil.VersionString())
	return nil
}
