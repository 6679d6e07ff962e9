// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// InvalidKeyError occurs when serializing a mapping whose key does
// not conform to the variable name grammar.
type InvalidKeyError struct {
	Key string
}

// Error implements the error interface.
func (e InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid variable name: %q", e.Key)
}

// Marshal serializes m to ".env" syntax. Keys are emitted in sorted
// order and every value is double quoted with full escaping, so the
// output parses back to exactly m.
func Marshal(m Map) ([]byte, error) {
	var buf bytes.Buffer
	err := Write(&buf, m)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write is like [Marshal] but writes to w.
func Write(w io.Writer, m Map) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		if !validKey(k) {
			return InvalidKeyError{Key: k}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, err := fmt.Fprintf(w, "%s=\"%s\"\n", k, escape(m[k]))
		if err != nil {
			return err
		}
	}
	return nil
}

func validKey(k string) bool {
	if k == "" || !isKeyStart(k[0]) {
		return false
	}
	for i := 1; i < len(k); i++ {
		if !isKeyChar(k[i]) {
			return false
		}
	}
	return true
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"$", `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
