// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseVector reads one activity vector. Values are separated by commas
// and/or whitespace; anything after '#' is a comment. A blank line yields
// a nil vector and no error.
func parseVector(line string) ([]float64, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, nil
	}

	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d %q: %w", i, f, err)
		}
		v[i] = x
	}

	return v, nil
}

// readVectors calls fn for each non-blank vector in r, with its 1-based
// line number. It stops at the first error.
func readVectors(r io.Reader, fn func(line int, v []float64) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		v, err := parseVector(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if v == nil {
			continue
		}
		if err = fn(n, v); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}

	return sc.Err()
}
