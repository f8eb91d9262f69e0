// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for reading and writing TOML files
// using [github.com/pelletier/go-toml/v2].
package tomlx

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, f)
}

// OpenFiles reads the given object from the given filenames using TOML
// encoding, in order, so that later files overwrite settings from earlier
// ones. It returns any errors joined together.
func OpenFiles(v any, filenames ...string) error {
	var errs []error
	for _, fn := range filenames {
		errs = append(errs, Open(v, fn))
	}
	return errors.Join(errs...)
}

// Read reads the given object from the given reader using TOML encoding.
func Read(v any, reader io.Reader) error {
	return toml.NewDecoder(reader).Decode(v)
}

// ReadBytes reads the given object from the given bytes using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return Read(v, bytes.NewReader(data))
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(v, f)
}

// Write writes the given object to the given writer using TOML encoding.
func Write(v any, writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(v)
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b)
	return b.Bytes(), err
}
