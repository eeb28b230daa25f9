package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-rainflow/internal/buffer"
)

var blockPool = buffer.NewPool[float64]()

// readBlocks parses whitespace-separated samples from r and hands them to
// fn in blocks of up to size samples. The block is reused between calls.
func readBlocks(r io.Reader, size int, fn func([]float64) error) (int, error) {
	block := blockPool.Get(size)
	defer blockPool.Put(block)

	buf := block.Slice()
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var n, total int

	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return total, fmt.Errorf("sample %d: %w", total+n+1, err)
		}

		buf[n] = v
		n++

		if n == len(buf) {
			if err := fn(buf); err != nil {
				return total, err
			}

			total += n
			n = 0
		}
	}

	if err := sc.Err(); err != nil {
		return total, fmt.Errorf("read samples: %w", err)
	}

	if n > 0 {
		if err := fn(buf[:n]); err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

// readAll collects every sample of r.
func readAll(r io.Reader, size int) ([]float64, error) {
	all, err := buffer.New[float64](size, nil)
	if err != nil {
		return nil, err
	}

	_, err = readBlocks(r, size, func(block []float64) error {
		for _, v := range block {
			if err := all.Append(v); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return all.Slice(), nil
}
